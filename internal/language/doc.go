// Package language normalizes language codes and names for display and for
// matching user input against the backend's language list.
//
// Codes are parsed as BCP 47 tags (ISO 639-1 and 639-2 codes both work) and
// names come from golang.org/x/text/language/display.
package language
