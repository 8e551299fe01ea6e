package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"learnlang/internal/envelope"
	"learnlang/internal/logging"
	"learnlang/internal/services"
)

// ListPacks returns every pack. An unrecognized body shape yields an empty
// list and a warning rather than an error.
func (c *Client) ListPacks(ctx context.Context) ([]Pack, error) {
	return listCollection[Pack](ctx, c, "/api/packs", nil)
}

// ListLanguages returns the languages packs can be created in.
func (c *Client) ListLanguages(ctx context.Context) ([]Language, error) {
	return listCollection[Language](ctx, c, "/api/languages", nil)
}

// GetPackDetail returns one pack with its vocabs.
func (c *Client) GetPackDetail(ctx context.Context, id string) (PackDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PackDetail{}, &services.ValidationError{Field: "pack_id", Message: "pack id is required"}
	}
	path := "/api/packs/" + url.PathEscape(id)
	body, err := c.getJSON(ctx, path, nil)
	if err != nil {
		return PackDetail{}, err
	}
	detail, err := envelope.Single[PackDetail](body)
	if err != nil {
		return PackDetail{}, services.Wrap(services.ErrFetchFailed, "api", "GET "+path, "decode pack detail", err)
	}
	if detail.Vocabs == nil {
		detail.Vocabs = []Vocab{}
	}
	return detail, nil
}

type flashcardMeta struct {
	Count *int `json:"count"`
}

// Flashcards fetches a randomized batch of cards.
func (c *Client) Flashcards(ctx context.Context, query FlashcardQuery) (FlashcardBatch, error) {
	params := url.Values{}
	params.Set("user_id", strings.TrimSpace(query.UserID))
	params.Set("lang_id", strings.TrimSpace(query.LanguageID))
	if ids := joinIDs(query.PackIDs); ids != "" {
		params.Set("pack_ids", ids)
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	body, err := c.getJSON(ctx, "/api/flashcards", params)
	if err != nil {
		return FlashcardBatch{}, err
	}
	cards, recognized, err := envelope.Collection[Flashcard](body)
	if err != nil {
		return FlashcardBatch{}, services.Wrap(services.ErrFetchFailed, "api", "GET /api/flashcards", "decode flashcards", err)
	}
	if !recognized {
		c.warnUnrecognized(ctx, "/api/flashcards", body)
	}
	batch := FlashcardBatch{Cards: cards, Count: len(cards)}
	meta, ok, err := envelope.Meta[flashcardMeta](body)
	if err == nil && ok && meta.Count != nil {
		batch.Count = *meta.Count
	}
	return batch, nil
}

// CreatePack creates a pack from JSON fields {name, lang_id, user_id}.
func (c *Client) CreatePack(ctx context.Context, req CreatePackRequest) (Pack, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Pack{}, fmt.Errorf("encode pack: %w", err)
	}
	body, err := c.send(ctx, http.MethodPost, "/api/packs", "application/json", payload)
	if err != nil {
		return Pack{}, err
	}
	return decodeCreated[Pack](body, "pack")
}

func listCollection[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	body, err := c.getJSON(ctx, path, query)
	if err != nil {
		return nil, err
	}
	items, recognized, err := envelope.Collection[T](body)
	if err != nil {
		return nil, services.Wrap(services.ErrFetchFailed, "api", "GET "+path, "decode collection", err)
	}
	if !recognized {
		c.warnUnrecognized(ctx, path, body)
	}
	return items, nil
}

// warnUnrecognized flags a collection body that was neither an array nor a
// data envelope, so an empty result is not mistaken for a verified-empty one.
func (c *Client) warnUnrecognized(ctx context.Context, path string, body []byte) {
	logging.WarnWithContext(logging.WithContext(ctx, c.logger), "response shape not recognized; treating as empty",
		"envelope_unrecognized",
		logging.String("path", path),
		logging.String("shape", envelope.Classify(body).Kind.String()),
		logging.Int("bytes", len(body)),
		logging.String(logging.FieldImpact, "collection shown as empty"),
		logging.String(logging.FieldErrorHint, "check that the backend returns an array or {data: [...]}"),
	)
}

func decodeCreated[T any](body []byte, what string) (T, error) {
	var zero T
	if len(strings.TrimSpace(string(body))) == 0 {
		return zero, nil
	}
	out, err := envelope.Single[T](body)
	if err != nil {
		return zero, fmt.Errorf("decode created %s: %w", what, err)
	}
	return out, nil
}

func joinIDs(ids []string) string {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	return strings.Join(cleaned, ",")
}
