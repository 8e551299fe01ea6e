// Package history keeps a local SQLite journal of submission attempts.
//
// Every create or update that reaches the backend is recorded with its
// outcome, HTTP status and request id so failures can be matched against
// backend logs later. The journal holds no image bytes and is never read back
// by the submitters.
package history
