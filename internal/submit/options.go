package submit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"learnlang/internal/history"
	"learnlang/internal/logging"
	"learnlang/internal/services"
)

// Recorder journals attempts that reached the backend.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) (history.Entry, error)
}

type settings struct {
	recorder Recorder
	logger   *slog.Logger
	draftID  string
}

// Option customizes a submitter.
type Option func(*settings)

// WithRecorder journals every attempt that reaches the backend.
func WithRecorder(recorder Recorder) Option {
	return func(s *settings) {
		s.recorder = recorder
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithDraftID tags journal entries and log lines with a persisted draft.
func WithDraftID(id string) Option {
	return func(s *settings) {
		s.draftID = id
	}
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "submit")
	return s
}

// prepare stamps ctx with the request id shared by the HTTP call, the log
// lines and the journal entry.
func (s *settings) prepare(ctx context.Context, operation history.Operation) context.Context {
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	if s.draftID != "" {
		ctx = services.WithDraftID(ctx, s.draftID)
	}
	return services.WithOperation(ctx, string(operation))
}

func (s *settings) record(ctx context.Context, entry history.Entry, started time.Time, err error) {
	logger := logging.WithContext(ctx, s.logger)
	entry.Elapsed = time.Since(started)
	entry.RequestID, _ = services.RequestIDFromContext(ctx)
	entry.DraftID = s.draftID
	entry.Outcome = history.OutcomeSucceeded
	if err != nil {
		entry.Outcome = history.OutcomeFailed
		entry.Message = services.UserMessage(err)
		if code, ok := services.StatusCode(err); ok {
			entry.StatusCode = code
		}
		logging.WarnWithContext(logger, "submission failed",
			"submission_failed",
			logging.String("operation", string(entry.Operation)),
			logging.Int("status", entry.StatusCode),
			logging.Error(err),
			logging.String(logging.FieldImpact, "nothing was saved on the backend"),
			logging.String(logging.FieldErrorHint, "fix the reported problem and resubmit"),
		)
	} else {
		logger.Info("submission accepted",
			logging.String("operation", string(entry.Operation)),
			logging.String("pack_id", entry.PackID),
			logging.String("vocab_id", entry.VocabID),
			logging.Duration("elapsed", entry.Elapsed),
		)
	}

	if s.recorder == nil {
		return
	}
	if _, recErr := s.recorder.Record(ctx, entry); recErr != nil {
		logging.WarnWithContext(logger, "journal write failed",
			"history_write_failed",
			logging.Error(recErr),
			logging.String(logging.FieldImpact, "attempt missing from learnlang history"),
		)
	}
}
