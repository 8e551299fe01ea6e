package drafts

import (
	"time"

	"learnlang/internal/selection"
)

// Mode says whether a draft creates a vocab or edits an existing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// AttachedMedia describes the payload stored in a draft's media sidecar.
type AttachedMedia struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int    `json:"size"`
}

// Draft is a persisted vocab form.
type Draft struct {
	ID          string          `json:"id"`
	Mode        Mode            `json:"mode"`
	PackID      string          `json:"pack_id"`
	VocabID     string          `json:"vocab_id,omitempty"`
	Name        string          `json:"name,omitempty"`
	Translation string          `json:"translation,omitempty"`
	Image       selection.State `json:"image"`
	Attached    *AttachedMedia  `json:"attached,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
