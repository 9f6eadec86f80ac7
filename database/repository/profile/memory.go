package profileRepo

import (
	"context"
	"sync"
	"time"

	"idvault/models"
)

// memoryProfileRepo is the default in-process implementation. A single
// RWMutex guards the map; profiles are cloned on the way in and out so
// callers never share memory with stored state.
type memoryProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

// NewMemoryProfileRepo returns an empty in-memory profile repository.
func NewMemoryProfileRepo() Repository {
	return &memoryProfileRepo{
		profiles: make(map[string]*models.Profile),
	}
}

func (r *memoryProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (r *memoryProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	existing, ok := r.profiles[profile.ID]
	if !ok {
		stored := profile.Clone()
		stored.CreatedAt = now
		stored.UpdatedAt = now
		r.profiles[profile.ID] = stored
		return nil
	}

	for k, v := range profile.Fields {
		if existing.Fields == nil {
			existing.Fields = make(map[string]models.ExtractedField)
		}
		existing.Fields[k] = v
	}
	for k, v := range profile.Embeddings {
		if existing.Embeddings == nil {
			existing.Embeddings = make(map[string]models.Embedding)
		}
		vec := make([]float32, len(v.Vector))
		copy(vec, v.Vector)
		existing.Embeddings[k] = models.Embedding{Model: v.Model, Vector: vec}
	}
	existing.UpdatedAt = now
	return nil
}

func (r *memoryProfileRepo) Search(ctx context.Context, match func(*models.Profile) bool) ([]*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Profile
	for _, p := range r.profiles {
		if match == nil || match(p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (r *memoryProfileRepo) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	return ids, nil
}
