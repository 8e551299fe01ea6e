package api

import "strings"

// ResolveImageURL turns a backend image path into an absolute URL. Absolute
// http(s) paths pass through unchanged; anything else is joined to base with
// exactly one slash.
func ResolveImageURL(base, imagePath string) string {
	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return imagePath
	}
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(imagePath, "/") {
		return base + "/" + imagePath
	}
	return base + imagePath
}

// ImageURL resolves imagePath against the client's base URL.
func (c *Client) ImageURL(imagePath string) string {
	return ResolveImageURL(c.baseURL, imagePath)
}
