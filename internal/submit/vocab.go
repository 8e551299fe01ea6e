package submit

import (
	"context"
	"strings"
	"time"

	"learnlang/internal/api"
	"learnlang/internal/history"
	"learnlang/internal/media"
	"learnlang/internal/selection"
	"learnlang/internal/services"
)

// Messages shown for blocked vocab submissions.
const (
	MsgTranslationRequired = "Please enter a translation"
	MsgNameRequired        = "Name is required"
	MsgImageRequired       = "Please choose an image or provide a valid image URL"
	MsgPackRequired        = "Please choose a pack"
)

// VocabUploader sends vocab forms to the backend.
type VocabUploader interface {
	CreateVocab(ctx context.Context, upload api.VocabUpload) (api.Vocab, error)
	UpdateVocab(ctx context.Context, id string, upload api.VocabUpload) (api.Vocab, error)
}

// VocabForm is the text of an add or edit form plus its image selection.
// Image may be nil when nothing was chosen.
type VocabForm struct {
	PackID      string
	VocabID     string
	Name        string
	Translation string
	Image       *selection.Selection
}

// Submitter sends one vocab form instance.
type Submitter struct {
	guard
	settings

	uploader VocabUploader
	fetcher  media.Fetcher
}

// New builds a submitter. fetcher resolves URL text that was never attached.
func New(uploader VocabUploader, fetcher media.Fetcher, opts ...Option) *Submitter {
	return &Submitter{
		settings: newSettings(opts),
		uploader: uploader,
		fetcher:  fetcher,
	}
}

// Create uploads a new vocab. The translation and an image are required; on
// success the form's selection is reset.
func (s *Submitter) Create(ctx context.Context, form VocabForm) (api.Vocab, error) {
	return run(&s.guard, func() (api.Vocab, error) {
		return s.create(ctx, form)
	})
}

// Update patches an existing vocab. The name is required. Without an image
// the backend keeps the current one.
func (s *Submitter) Update(ctx context.Context, form VocabForm) (api.Vocab, error) {
	return run(&s.guard, func() (api.Vocab, error) {
		return s.update(ctx, form)
	})
}

func (s *Submitter) create(ctx context.Context, form VocabForm) (api.Vocab, error) {
	translation := strings.TrimSpace(form.Translation)
	if translation == "" {
		return api.Vocab{}, &services.ValidationError{Field: "translation", Message: MsgTranslationRequired}
	}
	packID := strings.TrimSpace(form.PackID)
	if packID == "" {
		return api.Vocab{}, &services.ValidationError{Field: "pack_id", Message: MsgPackRequired}
	}

	ctx = s.prepare(ctx, history.OperationVocabCreate)
	source := imageSource(form.Image)
	image, ok, err := resolveImage(ctx, form.Image, s.fetcher)
	if err != nil || !ok {
		return api.Vocab{}, &services.ValidationError{Field: "image", Message: MsgImageRequired, Cause: err}
	}

	upload := api.VocabUpload{
		PackID:      packID,
		Name:        strings.TrimSpace(form.Name),
		Translation: translation,
		Image:       &image,
	}
	started := time.Now()
	vocab, err := s.uploader.CreateVocab(ctx, upload)
	s.record(ctx, history.Entry{
		Operation:   history.OperationVocabCreate,
		PackID:      packID,
		VocabID:     vocab.ID,
		Subject:     subject(upload),
		ImageSource: source,
		ImageBytes:  len(image.Bytes),
	}, started, err)
	if err != nil {
		return api.Vocab{}, err
	}
	if form.Image != nil {
		form.Image.Reset()
	}
	return vocab, nil
}

func (s *Submitter) update(ctx context.Context, form VocabForm) (api.Vocab, error) {
	vocabID := strings.TrimSpace(form.VocabID)
	if vocabID == "" {
		return api.Vocab{}, &services.ValidationError{Field: "vocab_id", Message: "vocab id is required"}
	}
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return api.Vocab{}, &services.ValidationError{Field: "name", Message: MsgNameRequired}
	}

	ctx = s.prepare(ctx, history.OperationVocabUpdate)
	source := imageSource(form.Image)
	upload := api.VocabUpload{
		PackID:      strings.TrimSpace(form.PackID),
		Name:        name,
		Translation: strings.TrimSpace(form.Translation),
	}
	image, ok, err := resolveImage(ctx, form.Image, s.fetcher)
	if err != nil {
		return api.Vocab{}, err
	}
	if ok {
		upload.Image = &image
	} else {
		source = ""
	}

	started := time.Now()
	vocab, err := s.uploader.UpdateVocab(ctx, vocabID, upload)
	s.record(ctx, history.Entry{
		Operation:   history.OperationVocabUpdate,
		PackID:      upload.PackID,
		VocabID:     vocabID,
		Subject:     subject(upload),
		ImageSource: source,
		ImageBytes:  len(image.Bytes),
	}, started, err)
	if err != nil {
		return api.Vocab{}, err
	}
	if form.Image != nil {
		form.Image.Reset()
	}
	return vocab, nil
}

func resolveImage(ctx context.Context, sel *selection.Selection, fetcher media.Fetcher) (media.Acquired, bool, error) {
	if sel == nil {
		return media.Acquired{}, false, nil
	}
	return sel.Resolve(ctx, fetcher)
}

func imageSource(sel *selection.Selection) string {
	if sel == nil {
		return selection.None.String()
	}
	return sel.Kind().String()
}

func subject(upload api.VocabUpload) string {
	if upload.Name != "" {
		return upload.Name
	}
	return upload.Translation
}
