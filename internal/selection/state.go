package selection

import (
	"fmt"

	"learnlang/internal/media"
)

// State is a copy of a selection suitable for persisting.
type State struct {
	Kind         Kind             `json:"kind"`
	File         *media.LocalFile `json:"file,omitempty"`
	URLInput     string           `json:"url_input,omitempty"`
	Resolved     *media.Acquired  `json:"-"`
	ResolvedFrom string           `json:"resolved_from,omitempty"`
}

// Snapshot copies the current selection. The drag highlight is not part of it.
func (s *Selection) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := State{Kind: s.kind, URLInput: s.urlInput}
	switch s.kind {
	case LocalFile:
		file := s.file
		state.File = &file
	case Resolved:
		resolved := s.resolved
		state.Resolved = &resolved
		state.ResolvedFrom = s.from
	}
	return state
}

// Restore replaces the selection with state after checking that the variant
// carries the data it needs.
func (s *Selection) Restore(state State) error {
	switch state.Kind {
	case None, PendingURL:
	case LocalFile:
		if state.File == nil {
			return fmt.Errorf("restore selection: %s without file", state.Kind)
		}
		if err := media.CheckLocal(*state.File); err != nil {
			return fmt.Errorf("restore selection: %w", err)
		}
	case Resolved:
		if state.Resolved == nil {
			return fmt.Errorf("restore selection: %s without payload", state.Kind)
		}
	default:
		return fmt.Errorf("restore selection: unknown kind %d", int(state.Kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = state.Kind
	s.urlInput = state.URLInput
	s.file = media.LocalFile{}
	s.resolved = media.Acquired{}
	s.from = ""
	switch state.Kind {
	case LocalFile:
		s.file = *state.File
	case Resolved:
		s.resolved = *state.Resolved
		s.from = state.ResolvedFrom
	case None, PendingURL:
		s.kind = s.urlKindLocked()
	}
	return nil
}
