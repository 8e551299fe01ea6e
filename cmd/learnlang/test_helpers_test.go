package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"learnlang/internal/config"
	"learnlang/internal/testsupport"
)

type receivedVocab struct {
	method      string
	path        string
	fields      map[string]string
	filename    string
	contentType string
	size        int
}

type fakeBackend struct {
	mu     sync.Mutex
	vocabs []receivedVocab
	packs  []map[string]string
}

func (b *fakeBackend) received() []receivedVocab {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]receivedVocab(nil), b.vocabs...)
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/packs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":"p1","name":"Kitchen","lang_id":"hi","user_id":"u1"}],"meta":null}`)
	})
	mux.HandleFunc("POST /api/packs", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"bad json","code":"bad_request"}`, http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.packs = append(b.packs, req)
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{
			"id": "p2", "name": req["name"], "lang_id": req["lang_id"], "user_id": req["user_id"],
		}})
	})
	mux.HandleFunc("GET /api/packs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "p1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"unknown pack id","code":"invalid_pack"}`)
			return
		}
		_, _ = io.WriteString(w, `{"pack":{"id":"p1","name":"Kitchen","lang_id":"hi","user_id":"u1"},"vocabs":[{"id":"v1","pack_id":"p1","name":"knife","translation":"chaku","image":"/files/images/v1.png"}]}`)
	})
	mux.HandleFunc("GET /api/languages", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"hi","name":"Hindi","code":"hi"}]`)
	})
	mux.HandleFunc("GET /api/flashcards", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lang_id") != "hi" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"lang_id is required"}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":[{"id":"v1","image":"/files/images/v1.png","name":"knife","pack_name":"Kitchen"}],"meta":{"count":1}}`)
	})
	recordVocab := func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		got := receivedVocab{method: r.Method, path: r.URL.Path, fields: map[string]string{}}
		for key, values := range r.MultipartForm.Value {
			got.fields[key] = values[0]
		}
		if file, header, err := r.FormFile("image"); err == nil {
			data, _ := io.ReadAll(file)
			file.Close()
			got.filename = header.Filename
			got.contentType = header.Header.Get("Content-Type")
			got.size = len(data)
		}
		b.mu.Lock()
		b.vocabs = append(b.vocabs, got)
		b.mu.Unlock()
		id := r.PathValue("id")
		if id == "" {
			id = "v9"
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id": id, "pack_id": got.fields["pack_id"], "name": got.fields["name"],
			"translation": got.fields["translation"], "image": "/files/images/" + id + ".png",
		})
	}
	mux.HandleFunc("POST /api/vocabs", recordVocab)
	mux.HandleFunc("PATCH /api/vocabs/{id}", recordVocab)
	mux.HandleFunc("GET /remote/photo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(testsupport.PNGSignature)
	})
	return mux
}

type cliTestEnv struct {
	cfg        *config.Config
	backend    *fakeBackend
	server     *httptest.Server
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	backend := &fakeBackend{}
	server := httptest.NewServer(backend.handler(t))
	t.Cleanup(server.Close)

	t.Setenv(config.EnvAPIBase, "")
	cfg := testsupport.NewConfig(t, testsupport.WithAPIBase(server.URL))
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(homeDir, ".config", "learnlang", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		backend:    backend,
		server:     server,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[api]\nbase_url = %q\n\n[paths]\nstate_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = %q\n",
		cfg.API.BaseURL,
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
		"error",
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
