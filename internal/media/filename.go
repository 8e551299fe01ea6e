package media

import (
	"net/url"
	"regexp"
	"strings"
)

const defaultBaseName = "image"

var existingExtension = regexp.MustCompile(`\.[a-zA-Z0-9]{2,4}$`)

// DeriveFilename names a payload fetched from u. The last path segment is kept
// when it already ends in a 2-4 character extension; otherwise an extension
// inferred from contentType is appended. An empty segment becomes "image".
func DeriveFilename(u *url.URL, contentType string) string {
	base := ""
	if u != nil {
		base = u.Path[strings.LastIndex(u.Path, "/")+1:]
	}
	if base == "" {
		base = defaultBaseName
	}
	if existingExtension.MatchString(base) {
		return base
	}
	return base + extensionFor(contentType)
}

// extensionFor checks png, webp, gif and jpeg/jpg in that order; anything
// else falls back to .jpg.
func extensionFor(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	default:
		return ".jpg"
	}
}
