package history

import "time"

// Operation names the kind of submission recorded.
type Operation string

const (
	OperationVocabCreate Operation = "vocab.create"
	OperationVocabUpdate Operation = "vocab.update"
	OperationPackCreate  Operation = "pack.create"
)

// Outcome is the result of one attempt.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Entry is one recorded submission attempt.
type Entry struct {
	ID          int64         `json:"id"`
	Operation   Operation     `json:"operation"`
	Outcome     Outcome       `json:"outcome"`
	PackID      string        `json:"pack_id,omitempty"`
	VocabID     string        `json:"vocab_id,omitempty"`
	Subject     string        `json:"subject,omitempty"`
	ImageSource string        `json:"image_source,omitempty"`
	ImageBytes  int           `json:"image_bytes,omitempty"`
	StatusCode  int           `json:"status_code,omitempty"`
	Message     string        `json:"message,omitempty"`
	RequestID   string        `json:"request_id,omitempty"`
	DraftID     string        `json:"draft_id,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Succeeded reports whether the attempt was accepted by the backend.
func (e Entry) Succeeded() bool {
	return e.Outcome == OutcomeSucceeded
}
