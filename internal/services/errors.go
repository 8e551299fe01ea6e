package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInvalidMediaType = errors.New("invalid media type")
	ErrMediaFetchFailed = errors.New("media fetch failed")
	ErrValidation       = errors.New("validation error")
	ErrUploadFailed     = errors.New("upload failed")
	ErrFetchFailed      = errors.New("fetch failed")
	ErrBusy             = errors.New("submission already in progress")
	ErrConfiguration    = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrFetchFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "client failure"
	}
	return strings.Join(parts, ": ")
}

// StatusError reports a non-success HTTP response. Kind is the marker the error
// matches with errors.Is; Body holds the response text verbatim.
type StatusError struct {
	Kind       error
	Op         string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	var b strings.Builder
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
		b.WriteString(": ")
	}
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "status %d", e.StatusCode)
	if body := strings.TrimSpace(e.Body); body != "" {
		b.WriteString(": ")
		b.WriteString(body)
	}
	return b.String()
}

func (e *StatusError) Unwrap() error { return e.Kind }

// Detail returns the server-provided body, or a status line when the body is empty.
func (e *StatusError) Detail() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return e.Body
	}
	text := http.StatusText(e.StatusCode)
	if text == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d %s", e.StatusCode, text)
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// ValidationError names the form field that blocked a submission.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Field + " is required"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Cause}
}

// UserMessage renders err the way the CLI shows it to a person: validation
// messages as-is, upload failures as the backend's own text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Error()
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) && errors.Is(statusErr.Kind, ErrUploadFailed) {
		if msg := APIErrorMessage(statusErr.Body); msg != "" {
			return msg
		}
		return "Upload failed: " + statusErr.Detail()
	}
	return err.Error()
}

// APIErrorMessage extracts the "error" field from a backend error body
// ({"error": ..., "code": ..., "request_id": ...}). It returns the trimmed body
// when it is not such an object.
func APIErrorMessage(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ""
	}
	var payload struct {
		Error     string `json:"error"`
		Code      string `json:"code"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil || payload.Error == "" {
		return trimmed
	}
	if payload.Code != "" {
		return fmt.Sprintf("%s (%s)", payload.Error, payload.Code)
	}
	return payload.Error
}
