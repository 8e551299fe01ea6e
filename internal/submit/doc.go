// Package submit validates vocab and pack forms and sends them to the backend.
//
// A Submitter or PackSubmitter stands for one form instance. Each exposes a
// busy flag that is raised before any network call and lowered on every exit
// path; a second call while busy fails immediately with services.ErrBusy.
// The error from the previous attempt is cleared when a new attempt starts.
package submit
