package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"learnlang/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.EnvAPIBase, "")
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "learnlang")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected base url: %q", cfg.API.BaseURL)
	}
	if cfg.Defaults.UserID != "u1" {
		t.Fatalf("unexpected default user: %q", cfg.Defaults.UserID)
	}
	if cfg.Media.MaxImageBytes != 10<<20 {
		t.Fatalf("unexpected max image bytes: %d", cfg.Media.MaxImageBytes)
	}
	if cfg.HistoryPath() != filepath.Join(wantState, "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.HistoryPath())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.DraftsDir(), cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "learnlang.toml")
	t.Setenv(config.EnvAPIBase, "")

	type payload struct {
		API struct {
			BaseURL        string `toml:"base_url"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
		} `toml:"api"`
		Defaults struct {
			UserID string `toml:"user_id"`
		} `toml:"defaults"`
	}
	custom := payload{}
	custom.API.BaseURL = "https://vocab.example.com/"
	custom.API.TimeoutSeconds = 5
	custom.Defaults.UserID = "  u42 "
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.API.BaseURL != "https://vocab.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.APITimeout().Seconds() != 5 {
		t.Fatalf("expected 5s timeout, got %s", cfg.APITimeout())
	}
	if cfg.Defaults.UserID != "u42" {
		t.Fatalf("expected trimmed user id, got %q", cfg.Defaults.UserID)
	}
}

func TestEnvVarOverridesConfigFileBaseURL(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "learnlang.toml")
	if err := os.WriteFile(configPath, []byte("[api]\nbase_url = \"http://file:8080\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.EnvAPIBase, "http://env:9090/")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.BaseURL != "http://env:9090" {
		t.Errorf("expected base url from env, got %q", cfg.API.BaseURL)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), config.EnvAPIBase) {
		t.Fatalf("sample config missing env override hint: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.API.BaseURL != config.Default().API.BaseURL {
		t.Fatalf("sample base url drifted from default: %q", cfg.API.BaseURL)
	}
	if !strings.Contains(cfg.Paths.StateDir, "learnlang") {
		t.Fatalf("expected state dir to contain learnlang, got %q", cfg.Paths.StateDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.API.BaseURL = "ftp://example.com"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-http base url")
	}

	cfg = config.Default()
	cfg.API.TimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}

	cfg = config.Default()
	cfg.Media.MaxImageBytes = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative image ceiling")
	}

	cfg = config.Default()
	cfg.Defaults.FlashcardsLimit = 101
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for flashcard limit above 100")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	defaults := config.Default()
	if err := defaults.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
