// Package media turns user-supplied images into upload payloads.
//
// A local file (dropped, picked, or named on the command line) is accepted
// when its declared MIME type begins with image/. A URL is downloaded once;
// the response must succeed and declare an image content type, and the
// payload's filename is derived from the URL path and that content type.
package media
