package selection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"learnlang/internal/media"
)

// Kind is the variant of a pending image selection.
type Kind int

const (
	// None means no image has been chosen.
	None Kind = iota
	// LocalFile is a dropped or picked file awaiting upload.
	LocalFile
	// PendingURL is typed URL text that has not been fetched yet.
	PendingURL
	// Resolved is a URL already fetched into a payload.
	Resolved
)

var kindNames = map[Kind]string{
	None:       "none",
	LocalFile:  "local_file",
	PendingURL: "pending_url",
	Resolved:   "resolved",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown selection kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown selection kind %q", text)
}

// Selection collapses drag-and-drop, the file picker and the image URL field
// into one pending choice. The zero value is an empty selection; it is safe
// for concurrent use.
type Selection struct {
	mu       sync.Mutex
	kind     Kind
	file     media.LocalFile
	resolved media.Acquired
	from     string
	urlInput string
	dragging bool
}

// New returns an empty selection.
func New() *Selection {
	return &Selection{}
}

// Kind reports the current variant.
func (s *Selection) Kind() Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// URLInput returns the raw text of the URL field.
func (s *Selection) URLInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.urlInput
}

// Dragging reports whether a drag is hovering over the drop zone.
func (s *Selection) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging
}

// DragEnter turns the drop-zone highlight on.
func (s *Selection) DragEnter() {
	s.mu.Lock()
	s.dragging = true
	s.mu.Unlock()
}

// DragLeave turns the drop-zone highlight off.
func (s *Selection) DragLeave() {
	s.mu.Lock()
	s.dragging = false
	s.mu.Unlock()
}

// Drop accepts the first dropped file. A drop always ends the drag highlight;
// a non-image file is rejected with ErrInvalidMediaType and the selection is
// otherwise left as it was.
func (s *Selection) Drop(files ...media.LocalFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = false
	if len(files) == 0 {
		return nil
	}
	return s.chooseLocked(files[0])
}

// Pick applies a file-picker change. A nil file means the picker was cleared,
// which drops any chosen or resolved file.
func (s *Selection) Pick(file *media.LocalFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if file == nil {
		if s.kind == LocalFile || s.kind == Resolved {
			s.file = media.LocalFile{}
			s.resolved = media.Acquired{}
			s.from = ""
			s.kind = s.urlKindLocked()
		}
		return nil
	}
	return s.chooseLocked(*file)
}

func (s *Selection) chooseLocked(file media.LocalFile) error {
	if err := media.CheckLocal(file); err != nil {
		return err
	}
	s.kind = LocalFile
	s.file = file
	s.resolved = media.Acquired{}
	s.from = ""
	s.urlInput = ""
	return nil
}

// TypeURL records URL field text. It never clears a chosen file; the file is
// only replaced once the URL is attached.
func (s *Selection) TypeURL(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urlInput = text
	if s.kind == None || s.kind == PendingURL {
		s.kind = s.urlKindLocked()
	}
}

func (s *Selection) urlKindLocked() Kind {
	if strings.TrimSpace(s.urlInput) == "" {
		return None
	}
	return PendingURL
}

// Attach fetches the URL field into a payload that replaces any chosen file.
// Blank URL text is a no-op. On failure the selection is unchanged.
func (s *Selection) Attach(ctx context.Context, fetcher media.Fetcher) error {
	target := strings.TrimSpace(s.URLInput())
	if target == "" {
		return nil
	}
	if fetcher == nil {
		return errors.New("attach image URL: no fetcher configured")
	}
	acquired, err := fetcher.FetchURL(ctx, target)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = Resolved
	s.file = media.LocalFile{}
	s.resolved = acquired
	s.from = target
	return nil
}

// Resolve produces the payload to upload: a chosen file first, then an
// attached URL, then the URL field fetched now. ok is false when nothing was
// chosen. Resolving does not change the selection.
func (s *Selection) Resolve(ctx context.Context, fetcher media.Fetcher) (acquired media.Acquired, ok bool, err error) {
	s.mu.Lock()
	kind, file, resolved, target := s.kind, s.file, s.resolved, strings.TrimSpace(s.urlInput)
	s.mu.Unlock()

	switch kind {
	case LocalFile:
		acquired, err = media.FromLocal(file)
		if err != nil {
			return media.Acquired{}, false, err
		}
		return acquired, true, nil
	case Resolved:
		return resolved, true, nil
	case PendingURL:
		if fetcher == nil {
			return media.Acquired{}, false, errors.New("resolve image URL: no fetcher configured")
		}
		acquired, err = fetcher.FetchURL(ctx, target)
		if err != nil {
			return media.Acquired{}, false, err
		}
		return acquired, true, nil
	default:
		return media.Acquired{}, false, nil
	}
}

// Reset clears the selection after a successful submission.
func (s *Selection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = None
	s.file = media.LocalFile{}
	s.resolved = media.Acquired{}
	s.from = ""
	s.urlInput = ""
	s.dragging = false
}

// Describe renders the selection for status output.
func (s *Selection) Describe() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.kind {
	case LocalFile:
		return fmt.Sprintf("file %s (%s)", s.file.Name, s.file.Type)
	case Resolved:
		return fmt.Sprintf("attached %s from %s (%d bytes)", s.resolved.Filename, s.from, len(s.resolved.Bytes))
	case PendingURL:
		return "url " + strings.TrimSpace(s.urlInput) + " (fetched on submit)"
	default:
		return "no image"
	}
}
