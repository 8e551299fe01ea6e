// Package drafts persists vocab forms between CLI invocations.
//
// A draft is one form instance: its text fields and image selection live in
// <id>.json under the drafts directory, and an image already fetched from a
// URL is kept beside it in <id>.media so it is not fetched again. Submitting
// a draft takes an exclusive lock on <id>.lock, so two processes cannot send
// the same draft at once.
package drafts
