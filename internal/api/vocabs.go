package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"learnlang/internal/media"
	"learnlang/internal/services"
)

// ImageField is the multipart field carrying the image payload.
const ImageField = "image"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// CreateVocab uploads a new vocab with multipart fields name, translation,
// pack_id and image.
func (c *Client) CreateVocab(ctx context.Context, upload VocabUpload) (Vocab, error) {
	fields := []formField{
		{"name", upload.Name},
		{"translation", upload.Translation},
		{"pack_id", upload.PackID},
	}
	return c.sendVocab(ctx, http.MethodPost, "/api/vocabs", fields, upload.Image)
}

// UpdateVocab patches an existing vocab. An empty translation is omitted, and
// a nil image keeps the current one.
func (c *Client) UpdateVocab(ctx context.Context, id string, upload VocabUpload) (Vocab, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vocab{}, &services.ValidationError{Field: "vocab_id", Message: "vocab id is required"}
	}
	fields := []formField{{"name", upload.Name}}
	if upload.Translation != "" {
		fields = append(fields, formField{"translation", upload.Translation})
	}
	if upload.PackID != "" {
		fields = append(fields, formField{"pack_id", upload.PackID})
	}
	return c.sendVocab(ctx, http.MethodPatch, "/api/vocabs/"+url.PathEscape(id), fields, upload.Image)
}

type formField struct {
	name  string
	value string
}

func (c *Client) sendVocab(ctx context.Context, method, path string, fields []formField, image *media.Acquired) (Vocab, error) {
	payload, contentType, err := encodeMultipart(fields, image)
	if err != nil {
		return Vocab{}, fmt.Errorf("encode vocab form: %w", err)
	}
	body, err := c.send(ctx, method, path, contentType, payload)
	if err != nil {
		return Vocab{}, err
	}
	return decodeCreated[Vocab](body, "vocab")
}

func encodeMultipart(fields []formField, image *media.Acquired) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}
	if image != nil {
		contentType := image.MimeType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(ImageField), quoteEscaper.Replace(image.Filename)))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(image.Bytes); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
