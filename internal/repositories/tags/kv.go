package tags

import (
	"context"
	"fmt"
	"sync"

	"github.com/qup1010/moodlistener/internal/common"
	"github.com/qup1010/moodlistener/internal/kv"
	"github.com/qup1010/moodlistener/internal/models"
)

const (
	// CollectionKey holds the JSON array of all tags in creation order.
	CollectionKey = "tags"

	// NextIDKey holds the next tag id as a decimal string.
	NextIDKey = "tags_next_id"
)

// KVRepository implements Repository on top of a kv.Store.
type KVRepository struct {
	mu    sync.Mutex
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) ListAll(ctx context.Context) (*models.TagsByMood, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := models.NewTagsByMood()
	for _, t := range all {
		out.Add(t)
	}
	return out, nil
}

func (r *KVRepository) ListByMood(ctx context.Context, mood models.Mood) ([]models.Tag, error) {
	if !mood.Valid() {
		return nil, fmt.Errorf("%w: unknown mood %q", common.ErrorValidation, mood)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Tag{}
	for _, t := range all {
		if t.MoodType == mood {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *KVRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range all {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("tag %d: %w", id, common.ErrorNotFound)
}

func (r *KVRepository) Create(ctx context.Context, in models.TagInput) (*models.Tag, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	id, err := kv.NextID(ctx, r.store, NextIDKey, maxID(all)+1)
	if err != nil {
		return nil, err
	}

	t := models.Tag{ID: id, Name: in.Name, MoodType: in.MoodType}
	if err := kv.PutJSON(ctx, r.store, CollectionKey, append(all, t)); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *KVRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, t := range all {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(all) {
		return nil
	}
	return kv.PutJSON(ctx, r.store, CollectionKey, kept)
}

// SeedDefaults writes the default catalog and its counter when the catalog
// key is absent. It reports whether anything was written.
func (r *KVRepository) SeedDefaults(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defaults := models.DefaultTags()
	for i := range defaults {
		defaults[i].ID = int64(i + 1)
	}

	wrote, err := kv.PutJSONIfAbsent(ctx, r.store, CollectionKey, defaults)
	if err != nil || !wrote {
		return false, err
	}
	if err := kv.PutJSON(ctx, r.store, NextIDKey, len(defaults)+1); err != nil {
		return false, err
	}
	return true, nil
}

func (r *KVRepository) load(ctx context.Context) ([]models.Tag, error) {
	all := []models.Tag{}
	if _, err := kv.GetJSON(ctx, r.store, CollectionKey, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func maxID(all []models.Tag) int64 {
	var m int64
	for _, t := range all {
		m = max(m, t.ID)
	}
	return m
}

var _ Repository = (*KVRepository)(nil)
