package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"resume-site/resume/model"
)

// DefaultSlug names the résumé served when no slug is configured.
const DefaultSlug = "default"

// Provider supplies the résumé to render. Implementations hand out values
// that callers must treat as read-only.
type Provider interface {
	Load(ctx context.Context) (model.ResumeData, error)
}

// Repo stores résumés keyed by slug.
type Repo interface {
	Get(ctx context.Context, slug string) (model.ResumeData, error)
	Put(ctx context.Context, slug string, data model.ResumeData) error
}

// Static is a Provider over an already validated value.
type Static struct {
	data model.ResumeData
}

// NewStatic validates data once and serves it on every Load.
func NewStatic(data model.ResumeData) (*Static, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return &Static{data: data}, nil
}

func (s *Static) Load(ctx context.Context) (model.ResumeData, error) {
	if err := ctx.Err(); err != nil {
		return model.ResumeData{}, err
	}
	return s.data, nil
}

// RepoProvider loads one slug from a Repo on every call, so edits made with
// `resumectl seed` show up without a restart.
type RepoProvider struct {
	Repo Repo
	Slug string
}

func (p RepoProvider) Load(ctx context.Context) (model.ResumeData, error) {
	slug := normalizeSlug(p.Slug)
	data, err := p.Repo.Get(ctx, slug)
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("load profile %q: %w", slug, err)
	}
	if err := data.Validate(); err != nil {
		return model.ResumeData{}, fmt.Errorf("load profile %q: %w: %v", slug, ErrInvalidData, err)
	}
	return data, nil
}

// Decode parses YAML or JSON résumé data and validates it. name picks the
// format by extension; JSON is also detected by a leading brace.
func Decode(raw []byte, name string) (model.ResumeData, error) {
	var data model.ResumeData
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return data, fmt.Errorf("%w: empty document", ErrInvalidData)
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".json" || (ext == "" && trimmed[0] == '{') {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&data); err != nil {
			return model.ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(trimmed))
		dec.KnownFields(true)
		if err := dec.Decode(&data); err != nil {
			return model.ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}

	if err := data.Validate(); err != nil {
		return model.ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return data, nil
}

func normalizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return DefaultSlug
	}
	return slug
}
