// Package services defines shared utilities consumed by the client packages and
// the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation IDs, draft IDs and
//     operation names for logging.
//   - Error markers (invalid media type, media fetch, validation, upload,
//     fetch) plus the Wrap helper and the typed StatusError/ValidationError
//     values that carry HTTP status, server body text and the offending field.
//
// Match failures with errors.Is against the markers; use errors.As when the
// status code or body is needed.
package services
