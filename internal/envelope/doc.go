// Package envelope normalizes backend response bodies.
//
// The backend answers either with a bare JSON value or with a {data, meta}
// wrapper. Classify sorts a body into one of four shapes (array, envelope,
// bare object, other) so Collection and Single can handle every branch
// explicitly instead of probing properties ad hoc.
package envelope
