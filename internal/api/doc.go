// Package api is the HTTP client for the vocabulary backend.
//
// Read operations (packs, pack detail, languages, flashcards) fail with
// services.ErrFetchFailed on a non-success status before any decoding, then
// pass the body through the envelope package so callers never see whether
// the server wrapped it. Write operations (pack create, vocab create and
// update) fail with services.ErrUploadFailed and keep the server's response
// text. Every request carries an X-Request-ID for correlating backend errors.
package api
