package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnlang/internal/api"
	"learnlang/internal/media"
	"learnlang/internal/services"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL + "/")
}

func TestListPacksAcceptsBothShapes(t *testing.T) {
	bodies := map[string]string{
		"bare":     `[{"id":"1","name":"Kitchen","lang_id":"hi","user_id":"u1"}]`,
		"envelope": `{"data":[{"id":"1","name":"Kitchen","lang_id":"hi","user_id":"u1"}],"meta":null}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/packs" {
					t.Fatalf("unexpected path: %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, body)
			})
			packs, err := client.ListPacks(context.Background())
			if err != nil {
				t.Fatalf("ListPacks returned error: %v", err)
			}
			if len(packs) != 1 || packs[0].ID != "1" || packs[0].Language() != "hi" || packs[0].OwnerID != "u1" {
				t.Fatalf("unexpected packs: %+v", packs)
			}
		})
	}
}

func TestListPacksUnexpectedShapeIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"unexpected":true}`)
	})
	packs, err := client.ListPacks(context.Background())
	if err != nil {
		t.Fatalf("ListPacks returned error: %v", err)
	}
	if packs == nil || len(packs) != 0 {
		t.Fatalf("expected empty list, got %#v", packs)
	}
}

func TestListFailsBeforeDecodingOnErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `[{"id":"1"}]`)
	})
	packs, err := client.ListPacks(context.Background())
	if !errors.Is(err, services.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if code, ok := services.StatusCode(err); !ok || code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d %v", code, ok)
	}
	if packs != nil {
		t.Fatalf("expected no packs, got %+v", packs)
	}
}

func TestGetPackDetail(t *testing.T) {
	bodies := []string{
		`{"data":{"pack":{"id":"p1","name":"Kitchen","lang_id":"hi","user_id":"u1"},"vocabs":[{"id":"v1","pack_id":"p1","name":"knife","translation":"chaku","image":"/files/images/v1.jpg"}]}}`,
		`{"pack":{"id":"p1","name":"Kitchen","lang_id":"hi","user_id":"u1"},"vocabs":[{"id":"v1","pack_id":"p1","name":"knife","image":"/files/images/v1.jpg"}]}`,
	}
	for _, body := range bodies {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/packs/p1" {
				t.Fatalf("unexpected path: %s", r.URL.Path)
			}
			_, _ = io.WriteString(w, body)
		})
		detail, err := client.GetPackDetail(context.Background(), "p1")
		if err != nil {
			t.Fatalf("GetPackDetail returned error: %v", err)
		}
		if detail.Pack.ID != "p1" || len(detail.Vocabs) != 1 || detail.Vocabs[0].ImagePath != "/files/images/v1.jpg" {
			t.Fatalf("unexpected detail: %+v", detail)
		}
	}
}

func TestGetPackDetailNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"unknown pack id: \"nope\"","code":"invalid_pack"}`)
	})
	_, err := client.GetPackDetail(context.Background(), "nope")
	if !errors.Is(err, services.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestCreateVocabSendsMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/vocabs" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatal("expected request id header")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		for field, want := range map[string]string{"name": "knife", "translation": "chaku", "pack_id": "p1"} {
			if got := r.FormValue(field); got != want {
				t.Fatalf("field %s = %q, want %q", field, got, want)
			}
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("missing image part: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "knife.png" || header.Header.Get("Content-Type") != "image/png" || string(data) != "png" {
			t.Fatalf("unexpected image part: %q %q %q", header.Filename, header.Header.Get("Content-Type"), data)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{
			"id": "v9", "pack_id": "p1", "name": "knife", "translation": "chaku", "image": "/files/images/v9.png",
		}})
	})

	vocab, err := client.CreateVocab(context.Background(), api.VocabUpload{
		PackID:      "p1",
		Name:        "knife",
		Translation: "chaku",
		Image:       &media.Acquired{Bytes: []byte("png"), Filename: "knife.png", MimeType: "image/png"},
	})
	if err != nil {
		t.Fatalf("CreateVocab returned error: %v", err)
	}
	if vocab.ID != "v9" || vocab.ImagePath != "/files/images/v9.png" {
		t.Fatalf("unexpected vocab: %+v", vocab)
	}
}

func TestCreateVocabSurfacesBodyVerbatim(t *testing.T) {
	const body = `{"error":"file too large","code":"file_too_large","request_id":"abc"}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = io.WriteString(w, body)
	})
	_, err := client.CreateVocab(context.Background(), api.VocabUpload{PackID: "p1", Translation: "x"})
	if !errors.Is(err, services.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	var statusErr *services.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusRequestEntityTooLarge || statusErr.Body != body {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
}

func TestUpdateVocabOmitsOptionalParts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/vocabs/v1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("name") != "spoon" {
			t.Fatalf("unexpected name %q", r.FormValue("name"))
		}
		if _, ok := r.MultipartForm.Value["translation"]; ok {
			t.Fatal("empty translation should be omitted")
		}
		if _, ok := r.MultipartForm.File["image"]; ok {
			t.Fatal("image should be omitted when unchanged")
		}
		_, _ = io.WriteString(w, `{"id":"v1","pack_id":"p1","name":"spoon","image":"/files/images/v1.jpg"}`)
	})
	vocab, err := client.UpdateVocab(context.Background(), "v1", api.VocabUpload{Name: "spoon"})
	if err != nil {
		t.Fatalf("UpdateVocab returned error: %v", err)
	}
	if vocab.Name != "spoon" {
		t.Fatalf("unexpected vocab: %+v", vocab)
	}
}

func TestCreatePackSendsJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/packs" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if req["name"] != "Kitchen" || req["lang_id"] != "hi" || req["user_id"] != "u1" || len(req) != 3 {
			t.Fatalf("unexpected body: %v", req)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":{"id":"p7","name":"Kitchen","lang_id":"hi","user_id":"u1"}}`)
	})
	pack, err := client.CreatePack(context.Background(), api.CreatePackRequest{Name: "Kitchen", LanguageID: "hi", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("CreatePack returned error: %v", err)
	}
	if pack.ID != "p7" {
		t.Fatalf("unexpected pack: %+v", pack)
	}
}

func TestFlashcardsQueryAndMeta(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("user_id") != "u1" || q.Get("lang_id") != "hi" || q.Get("pack_ids") != "p1,p2" || q.Get("limit") != "5" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"data":[{"id":"v1","image":"/files/a.jpg","name":"knife","pack_name":"Kitchen"}],"meta":{"count":1}}`)
	})
	batch, err := client.Flashcards(context.Background(), api.FlashcardQuery{
		UserID: "u1", LanguageID: "hi", PackIDs: []string{"p1", " ", "p2"}, Limit: 5,
	})
	if err != nil {
		t.Fatalf("Flashcards returned error: %v", err)
	}
	if batch.Count != 1 || len(batch.Cards) != 1 || batch.Cards[0].PackName != "Kitchen" {
		t.Fatalf("unexpected batch: %+v", batch)
	}
}

func TestListLanguages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":"hi","name":"Hindi","code":"hi"}]}`)
	})
	langs, err := client.ListLanguages(context.Background())
	if err != nil {
		t.Fatalf("ListLanguages returned error: %v", err)
	}
	if len(langs) != 1 || langs[0].Name != "Hindi" {
		t.Fatalf("unexpected languages: %+v", langs)
	}
}

func TestRequestIDFromContextIsForwarded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Request-ID"); got != "req-42" {
			t.Fatalf("unexpected request id %q", got)
		}
		_, _ = io.WriteString(w, `[]`)
	})
	ctx := services.WithRequestID(context.Background(), "req-42")
	if _, err := client.ListPacks(ctx); err != nil {
		t.Fatalf("ListPacks returned error: %v", err)
	}
}

func TestResolveImageURL(t *testing.T) {
	const base = "http://localhost:8080"
	cases := map[string]string{
		"/files/x.jpg":      "http://localhost:8080/files/x.jpg",
		"files/x.jpg":       "http://localhost:8080/files/x.jpg",
		"http://cdn/x.jpg":  "http://cdn/x.jpg",
		"https://cdn/x.jpg": "https://cdn/x.jpg",
	}
	for path, want := range cases {
		if got := api.ResolveImageURL(base, path); got != want {
			t.Fatalf("ResolveImageURL(%q) = %q, want %q", path, got, want)
		}
		if got := api.ResolveImageURL(base+"/", path); got != want {
			t.Fatalf("ResolveImageURL with trailing slash (%q) = %q, want %q", path, got, want)
		}
	}
	if got := api.NewClient(base + "/").ImageURL("/files/x.jpg"); got != "http://localhost:8080/files/x.jpg" {
		t.Fatalf("ImageURL = %q", got)
	}
}
