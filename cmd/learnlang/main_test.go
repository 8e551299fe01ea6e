package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"learnlang/internal/services"
	"learnlang/internal/submit"
	"learnlang/internal/testsupport"
)

func TestPacksListAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"packs"}, env.configPath)
	if err != nil {
		t.Fatalf("packs: %v", err)
	}
	requireContains(t, out, "Kitchen")
	requireContains(t, out, "p1")

	out, _, err = runCLI(t, []string{"--json", "packs"}, env.configPath)
	if err != nil {
		t.Fatalf("packs --json: %v", err)
	}
	var packs []map[string]any
	if err := json.Unmarshal([]byte(out), &packs); err != nil {
		t.Fatalf("decode packs json: %v\n%s", err, out)
	}
	if len(packs) != 1 || packs[0]["lang_id"] != "hi" {
		t.Fatalf("unexpected packs json: %v", packs)
	}

	out, _, err = runCLI(t, []string{"packs", "show", "p1"}, env.configPath)
	if err != nil {
		t.Fatalf("packs show: %v", err)
	}
	requireContains(t, out, "knife")
	requireContains(t, out, env.server.URL+"/files/images/v1.png")

	if _, _, err := runCLI(t, []string{"packs", "show", "nope"}, env.configPath); !errors.Is(err, services.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed for unknown pack, got %v", err)
	}
}

func TestPacksCreateUsesDefaultOwner(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"packs", "create", "--name", "Kitchen"}, env.configPath)
	if err == nil || services.UserMessage(err) != submit.MsgPackFieldsRequired {
		t.Fatalf("expected pack validation error, got %v", err)
	}

	out, _, err := runCLI(t, []string{"packs", "create", "--name", "Garden", "--lang", "hi"}, env.configPath)
	if err != nil {
		t.Fatalf("packs create: %v", err)
	}
	requireContains(t, out, "created Garden (p2)")
	env.backend.mu.Lock()
	defer env.backend.mu.Unlock()
	if len(env.backend.packs) != 1 || env.backend.packs[0]["user_id"] != "u1" {
		t.Fatalf("unexpected pack requests: %v", env.backend.packs)
	}
}

func TestLanguagesIncludesDisplayNames(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "languages"}, env.configPath)
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	var langs []map[string]string
	if err := json.Unmarshal([]byte(out), &langs); err != nil {
		t.Fatalf("decode languages json: %v\n%s", err, out)
	}
	if len(langs) != 1 || langs[0]["id"] != "hi" || langs[0]["english_name"] != "Hindi" {
		t.Fatalf("unexpected languages: %v", langs)
	}
}

func TestVocabAddUploadsFileAndJournals(t *testing.T) {
	env := setupCLITestEnv(t)
	imagePath := filepath.Join(env.baseDir, "knife.png")
	data := testsupport.WritePNG(t, imagePath)

	out, _, err := runCLI(t, []string{
		"vocab", "add", "--pack", "p1", "--name", " knife ", "--translation", "chaku", "--file", imagePath,
	}, env.configPath)
	if err != nil {
		t.Fatalf("vocab add: %v", err)
	}
	requireContains(t, out, "created knife (v9)")

	received := env.backend.received()
	if len(received) != 1 {
		t.Fatalf("expected one upload, got %d", len(received))
	}
	got := received[0]
	if got.fields["name"] != "knife" || got.fields["translation"] != "chaku" || got.fields["pack_id"] != "p1" {
		t.Fatalf("unexpected fields: %v", got.fields)
	}
	if got.filename != "knife.png" || got.contentType != "image/png" || got.size != len(data) {
		t.Fatalf("unexpected image part: %+v", got)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "vocab.create")
	requireContains(t, out, "succeeded")
}

func TestVocabAddValidatesBeforeNetwork(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"vocab", "add", "--pack", "p1", "--url", env.server.URL + "/remote/photo"}, env.configPath)
	if !errors.Is(err, services.ErrValidation) || services.UserMessage(err) != submit.MsgTranslationRequired {
		t.Fatalf("expected translation validation error, got %v", err)
	}

	_, _, err = runCLI(t, []string{"vocab", "add", "--pack", "p1", "--translation", "chaku"}, env.configPath)
	if !errors.Is(err, services.ErrValidation) || !strings.Contains(services.UserMessage(err), submit.MsgImageRequired) {
		t.Fatalf("expected image validation error, got %v", err)
	}
	if len(env.backend.received()) != 0 {
		t.Fatal("expected no uploads")
	}
}

func TestVocabAddRejectsNonImageFile(t *testing.T) {
	env := setupCLITestEnv(t)
	textPath := filepath.Join(env.baseDir, "notes.txt")
	if err := os.WriteFile(textPath, []byte("just words\n"), 0o644); err != nil {
		t.Fatalf("write text file: %v", err)
	}

	_, _, err := runCLI(t, []string{"vocab", "add", "--pack", "p1", "--translation", "x", "--file", textPath}, env.configPath)
	if !errors.Is(err, services.ErrInvalidMediaType) {
		t.Fatalf("expected ErrInvalidMediaType, got %v", err)
	}
}

func TestVocabEditKeepsImageByDefault(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"vocab", "edit", "v1", "--name", "spoon"}, env.configPath); err != nil {
		t.Fatalf("vocab edit: %v", err)
	}
	received := env.backend.received()
	if len(received) != 1 {
		t.Fatalf("expected one update, got %d", len(received))
	}
	got := received[0]
	if got.method != "PATCH" || got.path != "/api/vocabs/v1" || got.filename != "" {
		t.Fatalf("unexpected update: %+v", got)
	}
	if _, ok := got.fields["translation"]; ok {
		t.Fatalf("empty translation should be omitted: %v", got.fields)
	}
}

func TestDraftLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"draft", "new", "--pack", "p1"}, env.configPath)
	if err != nil {
		t.Fatalf("draft new: %v", err)
	}
	id := strings.TrimSpace(out)
	if id == "" {
		t.Fatal("expected draft id")
	}

	out, _, err = runCLI(t, []string{
		"draft", "edit", id[:8], "--translation", "tasveer", "--url", env.server.URL + "/remote/photo", "--attach",
	}, env.configPath)
	if err != nil {
		t.Fatalf("draft edit: %v", err)
	}
	requireContains(t, out, "attached photo.png")

	out, _, err = runCLI(t, []string{"draft", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("draft list: %v", err)
	}
	requireContains(t, out, "resolved")

	if _, _, err := runCLI(t, []string{"draft", "submit", id}, env.configPath); err != nil {
		t.Fatalf("draft submit: %v", err)
	}
	received := env.backend.received()
	if len(received) != 1 || received[0].filename != "photo.png" || received[0].fields["translation"] != "tasveer" {
		t.Fatalf("unexpected uploads: %+v", received)
	}

	out, _, err = runCLI(t, []string{"draft", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("draft list: %v", err)
	}
	requireContains(t, out, "No drafts")
}

func TestFlashcards(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"flashcards", "--lang", "Hindi", "--packs", "p1"}, env.configPath)
	if err != nil {
		t.Fatalf("flashcards: %v", err)
	}
	requireContains(t, out, "knife")
	requireContains(t, out, "1 cards")

	if _, _, err := runCLI(t, []string{"flashcards", "--lang", "hi", "--limit", "500"}, env.configPath); err == nil {
		t.Fatal("expected limit validation error")
	}
}

func TestImageURL(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"image-url", "/files/x.jpg", "http://cdn/x.jpg"}, env.configPath)
	if err != nil {
		t.Fatalf("image-url: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[0] != env.server.URL+"/files/x.jpg" || lines[1] != "http://cdn/x.jpg" {
		t.Fatalf("unexpected output: %q", out)
	}
}
