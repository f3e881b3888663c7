package profiles

import (
	"context"
	"fmt"
	"sync"

	"resume-site/resume/model"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]model.ResumeData
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]model.ResumeData)}
}

func (r *MemoryRepo) Get(ctx context.Context, slug string) (model.ResumeData, error) {
	if err := ctx.Err(); err != nil {
		return model.ResumeData{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.data[normalizeSlug(slug)]
	if !ok {
		return model.ResumeData{}, ErrNotFound
	}
	return data, nil
}

// Put stores or replaces the résumé for slug.
func (r *MemoryRepo) Put(ctx context.Context, slug string, data model.ResumeData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[normalizeSlug(slug)] = data
	return nil
}
