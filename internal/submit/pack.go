package submit

import (
	"context"
	"strings"
	"time"

	"learnlang/internal/api"
	"learnlang/internal/history"
	"learnlang/internal/services"
)

// MsgPackFieldsRequired is shown when a pack form lacks a name or language.
const MsgPackFieldsRequired = "Name and language are required"

// PackCreator creates packs on the backend.
type PackCreator interface {
	CreatePack(ctx context.Context, req api.CreatePackRequest) (api.Pack, error)
}

// PackForm is the create-pack form. An empty OwnerID falls back to the
// submitter's default owner.
type PackForm struct {
	Name       string
	LanguageID string
	OwnerID    string
}

// PackSubmitter sends one create-pack form instance.
type PackSubmitter struct {
	guard
	settings

	creator      PackCreator
	defaultOwner string
}

// NewPackSubmitter builds a pack submitter.
func NewPackSubmitter(creator PackCreator, defaultOwner string, opts ...Option) *PackSubmitter {
	return &PackSubmitter{
		settings:     newSettings(opts),
		creator:      creator,
		defaultOwner: strings.TrimSpace(defaultOwner),
	}
}

// Create validates the form and creates the pack.
func (p *PackSubmitter) Create(ctx context.Context, form PackForm) (api.Pack, error) {
	return run(&p.guard, func() (api.Pack, error) {
		return p.create(ctx, form)
	})
}

func (p *PackSubmitter) create(ctx context.Context, form PackForm) (api.Pack, error) {
	name := strings.TrimSpace(form.Name)
	lang := strings.TrimSpace(form.LanguageID)
	if name == "" {
		return api.Pack{}, &services.ValidationError{Field: "name", Message: MsgPackFieldsRequired}
	}
	if lang == "" {
		return api.Pack{}, &services.ValidationError{Field: "lang_id", Message: MsgPackFieldsRequired}
	}
	owner := strings.TrimSpace(form.OwnerID)
	if owner == "" {
		owner = p.defaultOwner
	}

	ctx = p.prepare(ctx, history.OperationPackCreate)
	started := time.Now()
	pack, err := p.creator.CreatePack(ctx, api.CreatePackRequest{Name: name, LanguageID: lang, OwnerID: owner})
	p.record(ctx, history.Entry{
		Operation: history.OperationPackCreate,
		PackID:    pack.ID,
		Subject:   name,
	}, started, err)
	if err != nil {
		return api.Pack{}, err
	}
	return pack, nil
}
