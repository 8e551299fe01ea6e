package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const entryColumns = "id, operation, outcome, pack_id, vocab_id, subject, image_source, image_bytes, status_code, message, request_id, draft_id, elapsed_ms, created_at"

// Record appends an attempt and returns it with its assigned id.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if strings.TrimSpace(string(entry.Operation)) == "" {
		return Entry{}, fmt.Errorf("record attempt: operation is required")
	}
	if entry.Outcome == "" {
		entry.Outcome = OutcomeFailed
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO attempts (
            operation, outcome, pack_id, vocab_id, subject, image_source, image_bytes,
            status_code, message, request_id, draft_id, elapsed_ms, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(entry.Operation),
		string(entry.Outcome),
		nullableString(entry.PackID),
		nullableString(entry.VocabID),
		nullableString(entry.Subject),
		nullableString(entry.ImageSource),
		entry.ImageBytes,
		entry.StatusCode,
		nullableString(entry.Message),
		nullableString(entry.RequestID),
		nullableString(entry.DraftID),
		entry.Elapsed.Milliseconds(),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("last insert id: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// ListFilter narrows List.
type ListFilter struct {
	Limit      int
	PackID     string
	FailedOnly bool
}

// List returns attempts newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	ctx = ensureContext(ctx)
	var (
		clauses []string
		args    []any
	)
	if pack := strings.TrimSpace(filter.PackID); pack != "" {
		clauses = append(clauses, "pack_id = ?")
		args = append(args, pack)
	}
	if filter.FailedOnly {
		clauses = append(clauses, "outcome = ?")
		args = append(args, string(OutcomeFailed))
	}
	query := "SELECT " + entryColumns + " FROM attempts"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return entries, nil
}

// Clear removes every recorded attempt and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM attempts")
	if err != nil {
		return 0, fmt.Errorf("clear attempts: %w", err)
	}
	return res.RowsAffected()
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		entry       Entry
		operation   string
		outcome     string
		packID      sql.NullString
		vocabID     sql.NullString
		subject     sql.NullString
		imageSource sql.NullString
		message     sql.NullString
		requestID   sql.NullString
		draftID     sql.NullString
		elapsedMS   int64
		createdRaw  string
	)
	if err := scanner.Scan(
		&entry.ID,
		&operation,
		&outcome,
		&packID,
		&vocabID,
		&subject,
		&imageSource,
		&entry.ImageBytes,
		&entry.StatusCode,
		&message,
		&requestID,
		&draftID,
		&elapsedMS,
		&createdRaw,
	); err != nil {
		return Entry{}, fmt.Errorf("scan attempt: %w", err)
	}
	entry.Operation = Operation(operation)
	entry.Outcome = Outcome(outcome)
	entry.PackID = packID.String
	entry.VocabID = vocabID.String
	entry.Subject = subject.String
	entry.ImageSource = imageSource.String
	entry.Message = message.String
	entry.RequestID = requestID.String
	entry.DraftID = draftID.String
	entry.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	if parsed, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		entry.CreatedAt = parsed
	}
	return entry, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
