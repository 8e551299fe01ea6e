package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"learnlang/internal/services"
)

const (
	imageTypePrefix = "image/"
	octetStream     = "application/octet-stream"
)

// Acquired is one validated image payload ready for upload. It lives for a
// single submission.
type Acquired struct {
	Bytes    []byte
	Filename string
	MimeType string
}

// Empty reports whether no payload was produced.
func (a Acquired) Empty() bool {
	return len(a.Bytes) == 0 && a.Filename == ""
}

// LocalFile is a dropped or picked file with its declared MIME type. Data may
// be nil, in which case the contents are read from Path when acquired.
type LocalFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
	Data []byte `json:"-"`
}

// IsImageType reports whether a declared MIME type names an image.
func IsImageType(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), imageTypePrefix)
}

// CheckLocal rejects files whose declared type is not an image without reading them.
func CheckLocal(file LocalFile) error {
	if !IsImageType(file.Type) {
		declared := file.Type
		if declared == "" {
			declared = octetStream
		}
		return services.Wrap(services.ErrInvalidMediaType, "media", "local file",
			fmt.Sprintf("%s has type %q, only image files are allowed", displayName(file), declared), nil)
	}
	return nil
}

// FromLocal accepts a local file whose declared type begins with image/. Name
// and type pass through unchanged.
func FromLocal(file LocalFile) (Acquired, error) {
	if err := CheckLocal(file); err != nil {
		return Acquired{}, err
	}
	data := file.Data
	if data == nil && file.Path != "" {
		raw, err := os.ReadFile(file.Path)
		if err != nil {
			return Acquired{}, fmt.Errorf("read %s: %w", file.Path, err)
		}
		data = raw
	}
	return Acquired{Bytes: data, Filename: file.Name, MimeType: file.Type}, nil
}

// OpenLocalFile describes a file on disk. Its declared type comes from the
// file's magic bytes, the way a browser fills File.type for a dropped file.
func OpenLocalFile(path string) (LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return LocalFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return LocalFile{}, fmt.Errorf("%s is a directory", path)
	}
	detected, err := mimetype.DetectFile(path)
	declared := octetStream
	if err == nil && detected != nil {
		declared = detected.String()
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		absolute = path
	}
	return LocalFile{Name: filepath.Base(path), Type: declared, Path: absolute}, nil
}

func displayName(file LocalFile) string {
	if file.Name != "" {
		return file.Name
	}
	if file.Path != "" {
		return filepath.Base(file.Path)
	}
	return "file"
}
