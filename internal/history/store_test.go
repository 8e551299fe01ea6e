package history_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"learnlang/internal/history"
	"learnlang/internal/testsupport"
)

func TestRecordAndList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first, err := store.Record(ctx, history.Entry{
		Operation:   history.OperationVocabCreate,
		Outcome:     history.OutcomeSucceeded,
		PackID:      "p1",
		VocabID:     "v1",
		Subject:     "knife",
		ImageSource: "file",
		ImageBytes:  42,
		StatusCode:  201,
		RequestID:   "req-1",
		Elapsed:     150 * time.Millisecond,
		CreatedAt:   base,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected id to be assigned")
	}
	if _, err := store.Record(ctx, history.Entry{
		Operation:  history.OperationPackCreate,
		PackID:     "p2",
		StatusCode: 400,
		Message:    "Name and language are required",
		CreatedAt:  base.Add(time.Minute),
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := store.List(ctx, history.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != history.OperationPackCreate || entries[0].Outcome != history.OutcomeFailed {
		t.Fatalf("expected newest failed pack entry first, got %+v", entries[0])
	}
	got := entries[1]
	if got.VocabID != "v1" || got.ImageBytes != 42 || got.Elapsed != 150*time.Millisecond || !got.Succeeded() {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if !got.CreatedAt.Equal(base) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, base)
	}
}

func TestListFilters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	for i, outcome := range []history.Outcome{history.OutcomeSucceeded, history.OutcomeFailed, history.OutcomeFailed} {
		pack := "p1"
		if i == 2 {
			pack = "p2"
		}
		if _, err := store.Record(ctx, history.Entry{Operation: history.OperationVocabUpdate, Outcome: outcome, PackID: pack}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	failed, err := store.List(ctx, history.ListFilter{FailedOnly: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(failed) != 2 {
		t.Fatalf("expected 2 failed entries, got %d", len(failed))
	}

	byPack, err := store.List(ctx, history.ListFilter{PackID: "p1", Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byPack) != 1 || byPack[0].PackID != "p1" {
		t.Fatalf("unexpected filtered entries: %+v", byPack)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	remaining, err := store.List(ctx, history.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected empty journal, got %d entries", len(remaining))
	}
}

func TestRecordRequiresOperation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	if _, err := store.Record(context.Background(), history.Entry{}); err == nil {
		t.Fatal("expected error for missing operation")
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.Record(context.Background(), history.Entry{Operation: history.OperationVocabCreate}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenHistory(t, cfg)
	entries, err := reopened.List(context.Background(), history.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(entries))
	}
	if reopened.Path() != cfg.HistoryPath() {
		t.Fatalf("path = %q, want %q", reopened.Path(), cfg.HistoryPath())
	}
}

func TestSchemaMismatchIsReported(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", cfg.HistoryPath())
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := history.Open(cfg); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
