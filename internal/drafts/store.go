package drafts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"learnlang/internal/logging"
	"learnlang/internal/media"
	"learnlang/internal/selection"
	"learnlang/internal/services"
)

const (
	draftExt      = ".json"
	mediaExt      = ".media"
	lockExt       = ".lock"
	minPrefixSize = 4
)

var (
	// ErrNotFound means no draft matches the reference.
	ErrNotFound = errors.New("draft not found")
	// ErrAmbiguous means a short id matches more than one draft.
	ErrAmbiguous = errors.New("draft id is ambiguous")
)

// Store reads and writes drafts in one directory.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewStore returns a store rooted at dir. The directory is created on first save.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "drafts"),
		now:    time.Now,
	}
}

// Dir returns the drafts directory.
func (s *Store) Dir() string {
	return s.dir
}

// Create starts a new draft. Update drafts need the vocab they edit.
func (s *Store) Create(mode Mode, packID, vocabID string) (Draft, error) {
	packID = strings.TrimSpace(packID)
	vocabID = strings.TrimSpace(vocabID)
	switch mode {
	case ModeCreate:
		if packID == "" {
			return Draft{}, &services.ValidationError{Field: "pack_id", Message: "pack id is required"}
		}
	case ModeUpdate:
		if vocabID == "" {
			return Draft{}, &services.ValidationError{Field: "vocab_id", Message: "vocab id is required to edit"}
		}
	default:
		return Draft{}, fmt.Errorf("unknown draft mode %q", mode)
	}

	now := s.now().UTC()
	draft := Draft{
		ID:        uuid.NewString(),
		Mode:      mode,
		PackID:    packID,
		VocabID:   vocabID,
		Image:     selection.State{Kind: selection.None},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.write(draft); err != nil {
		return Draft{}, err
	}
	s.logger.Debug("created draft",
		logging.String(logging.FieldDraftID, draft.ID),
		logging.String("mode", string(mode)),
		logging.String("pack_id", packID))
	return draft, nil
}

// Load reads a draft by full id or unique id prefix.
func (s *Store) Load(ref string) (Draft, error) {
	id, err := s.resolveID(ref)
	if err != nil {
		return Draft{}, err
	}
	data, err := os.ReadFile(s.draftPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Draft{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return Draft{}, fmt.Errorf("read draft: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return Draft{}, fmt.Errorf("parse draft %s: %w", id, err)
	}
	return draft, nil
}

// Save writes the draft's text fields and selection. The selection's
// resolved payload, if any, goes to the media sidecar.
func (s *Store) Save(draft Draft, sel *selection.Selection) (Draft, error) {
	if _, err := uuid.Parse(draft.ID); err != nil {
		return Draft{}, fmt.Errorf("invalid draft id %q: %w", draft.ID, err)
	}
	if sel != nil {
		draft.Image = sel.Snapshot()
	}
	switch {
	case draft.Image.Kind == selection.Resolved && draft.Image.Resolved != nil:
		payload := draft.Image.Resolved
		if err := writeAtomic(s.mediaPath(draft.ID), payload.Bytes); err != nil {
			return Draft{}, fmt.Errorf("persist draft media: %w", err)
		}
		draft.Attached = &AttachedMedia{Filename: payload.Filename, MimeType: payload.MimeType, Size: len(payload.Bytes)}
	case draft.Image.Kind == selection.Resolved:
		// Loaded drafts carry the payload only in the sidecar.
		if draft.Attached == nil {
			return Draft{}, fmt.Errorf("draft %s: attached image metadata missing", draft.ID)
		}
	default:
		draft.Attached = nil
		s.removeMedia(draft.ID)
	}
	draft.UpdatedAt = s.now().UTC()
	if err := s.write(draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// Selection rebuilds the draft's image selection, reading the media sidecar
// for an attached URL.
func (s *Store) Selection(draft Draft) (*selection.Selection, error) {
	state := draft.Image
	if state.Kind == selection.Resolved {
		if draft.Attached == nil {
			return nil, fmt.Errorf("draft %s: attached image metadata missing", draft.ID)
		}
		data, err := os.ReadFile(s.mediaPath(draft.ID))
		if err != nil {
			return nil, fmt.Errorf("read draft media: %w", err)
		}
		state.Resolved = &media.Acquired{Bytes: data, Filename: draft.Attached.Filename, MimeType: draft.Attached.MimeType}
	}
	sel := selection.New()
	if err := sel.Restore(state); err != nil {
		return nil, fmt.Errorf("draft %s: %w", draft.ID, err)
	}
	return sel, nil
}

// List returns all drafts, most recently updated first. Unreadable files are
// skipped with a warning.
func (s *Store) List() ([]Draft, error) {
	ids, err := s.ids()
	if err != nil {
		return nil, err
	}
	drafts := make([]Draft, 0, len(ids))
	for _, id := range ids {
		draft, err := s.Load(id)
		if err != nil {
			logging.WarnWithContext(s.logger, "skipping unreadable draft",
				"draft_load_failed",
				logging.String(logging.FieldDraftID, id),
				logging.Error(err),
				logging.String(logging.FieldImpact, "draft hidden from listing"),
				logging.String(logging.FieldErrorHint, "discard the draft or fix the JSON file"))
			continue
		}
		drafts = append(drafts, draft)
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
	})
	return drafts, nil
}

// Discard removes a draft with its media and lock files.
func (s *Store) Discard(ref string) error {
	id, err := s.resolveID(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(s.draftPath(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return fmt.Errorf("remove draft: %w", err)
	}
	s.removeMedia(id)
	_ = os.Remove(s.lockPath(id))
	s.logger.Debug("discarded draft", logging.String(logging.FieldDraftID, id))
	return nil
}

// Lock takes the draft's submission lock without waiting. A draft already
// locked by another process fails with services.ErrBusy.
func (s *Store) Lock(id string) (func() error, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid draft id %q: %w", id, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create drafts directory: %w", err)
	}
	lock := flock.New(s.lockPath(id))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire draft lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, services.ErrBusy)
	}
	return lock.Unlock, nil
}

func (s *Store) resolveID(ref string) (string, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return "", &services.ValidationError{Field: "draft_id", Message: "draft id is required"}
	}
	if parsed, err := uuid.Parse(ref); err == nil {
		return parsed.String(), nil
	}
	if len(ref) < minPrefixSize || strings.Trim(ref, "0123456789abcdef-") != "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	ids, err := s.ids()
	if err != nil {
		return "", err
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d drafts", ErrAmbiguous, ref, len(matches))
	}
}

func (s *Store) ids() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read drafts directory: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, draftExt) {
			continue
		}
		id := strings.TrimSuffix(name, draftExt)
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Store) write(draft Draft) error {
	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := writeAtomic(s.draftPath(draft.ID), data); err != nil {
		return fmt.Errorf("persist draft: %w", err)
	}
	return nil
}

func (s *Store) removeMedia(id string) {
	if err := os.Remove(s.mediaPath(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("remove draft media failed",
			logging.String(logging.FieldDraftID, id),
			logging.Error(err))
	}
}

func (s *Store) draftPath(id string) string { return filepath.Join(s.dir, id+draftExt) }
func (s *Store) mediaPath(id string) string { return filepath.Join(s.dir, id+mediaExt) }
func (s *Store) lockPath(id string) string  { return filepath.Join(s.dir, id+lockExt) }

// writeAtomic writes data via a temp file and rename.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
