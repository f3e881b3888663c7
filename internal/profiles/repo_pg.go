package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-site/resume/model"
)

// PGRepo implements Repo using the resume_profiles table. Data is stored as
// JSONB in the same camelCase shape as data files.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the résumé stored under slug.
func (r *PGRepo) Get(ctx context.Context, slug string) (model.ResumeData, error) {
	const query = `
SELECT data
FROM resume_profiles
WHERE slug = $1`

	var raw []byte
	if err := r.DB.QueryRowContext(ctx, query, normalizeSlug(slug)).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ResumeData{}, ErrNotFound
		}
		return model.ResumeData{}, fmt.Errorf("select profile: %w", err)
	}

	var data model.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return data, nil
}

// Put upserts the résumé for slug.
func (r *PGRepo) Put(ctx context.Context, slug string, data model.ResumeData) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	const query = `
INSERT INTO resume_profiles (slug, data, created_at, updated_at)
VALUES ($1, $2, now(), now())
ON CONFLICT (slug) DO UPDATE
SET data = EXCLUDED.data,
    updated_at = now()`

	if _, err := r.DB.ExecContext(ctx, query, normalizeSlug(slug), raw); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
