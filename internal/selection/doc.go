// Package selection tracks the image a vocab form will upload.
//
// Drag-and-drop, the file picker and the image URL field all feed one
// Selection whose variant is exactly one of None, LocalFile, PendingURL or
// Resolved. Choosing a local file clears the URL text; typing a URL never
// clears a chosen file; attaching a URL replaces the file with the fetched
// payload. Non-image files are rejected without touching the selection.
package selection
