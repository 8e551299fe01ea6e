package api

import "learnlang/internal/media"

// Pack is a named collection of vocabs scoped to one language and owner.
type Pack struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LanguageID   string `json:"lang_id,omitempty"`
	LanguageCode string `json:"lang_code,omitempty"`
	OwnerID      string `json:"user_id"`
	IsPublic     *bool  `json:"public,omitempty"`
}

// Language returns the language id, falling back to the code older backends send.
func (p Pack) Language() string {
	if p.LanguageID != "" {
		return p.LanguageID
	}
	return p.LanguageCode
}

// Vocab is one image-labeled term. ImagePath is server-relative; resolve it
// with ImageURL before display.
type Vocab struct {
	ID          string `json:"id"`
	PackID      string `json:"pack_id"`
	Name        string `json:"name"`
	Translation string `json:"translation,omitempty"`
	ImagePath   string `json:"image"`
}

// PackDetail is a pack with its vocabs.
type PackDetail struct {
	Pack   Pack    `json:"pack"`
	Vocabs []Vocab `json:"vocabs"`
}

// Language is a supported study language.
type Language struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Flashcard is one randomized study card.
type Flashcard struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	Name     string `json:"name"`
	PackName string `json:"pack_name"`
}

// FlashcardQuery selects cards for a user and language. PackIDs and Limit
// are optional; the backend caps Limit at 100.
type FlashcardQuery struct {
	UserID     string
	LanguageID string
	PackIDs    []string
	Limit      int
}

// FlashcardBatch is a page of cards with the count reported in meta.
type FlashcardBatch struct {
	Cards []Flashcard `json:"cards"`
	Count int         `json:"count"`
}

// CreatePackRequest is the JSON body of POST /api/packs.
type CreatePackRequest struct {
	Name       string `json:"name"`
	LanguageID string `json:"lang_id"`
	OwnerID    string `json:"user_id"`
}

// VocabUpload carries the multipart fields of a vocab create or update.
// Image is nil on an update that keeps the existing image.
type VocabUpload struct {
	PackID      string
	Name        string
	Translation string
	Image       *media.Acquired
}
