package entries

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/qup1010/moodlistener/internal/common"
	"github.com/qup1010/moodlistener/internal/kv"
	"github.com/qup1010/moodlistener/internal/models"
	"github.com/qup1010/moodlistener/internal/timex"
)

const (
	// CollectionKey holds the JSON array of all entries.
	CollectionKey = "entries"

	// NextIDKey holds the next id to assign, as a decimal string.
	NextIDKey = "entries_next_id"
)

// KVRepository implements Repository on top of a kv.Store. The collection
// is read and rewritten as a whole on every call.
type KVRepository struct {
	mu    sync.Mutex
	store kv.Store
	now   func() time.Time
}

// NewKVRepository returns a KVRepository over store.
func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store, now: time.Now}
}

// WithClock replaces the time source used for timestamps.
func (r *KVRepository) WithClock(now func() time.Time) *KVRepository {
	r.now = now
	return r
}

func (r *KVRepository) List(ctx context.Context, f models.EntryFilter) ([]models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

func (r *KVRepository) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return nil, fmt.Errorf("entry %d: %w", id, common.ErrorNotFound)
	}
	e := all[i]
	return &e, nil
}

func (r *KVRepository) GetByDate(ctx context.Context, date string) ([]models.Entry, error) {
	return r.List(ctx, models.EntryFilter{StartDate: date, EndDate: date})
}

func (r *KVRepository) Search(ctx context.Context, query string) ([]models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	found := make([]models.Entry, 0, len(all))
	for _, e := range all {
		if e.MatchesQuery(query) {
			found = append(found, e)
		}
	}
	models.SortEntries(found)
	return found, nil
}

func (r *KVRepository) Create(ctx context.Context, in models.EntryInput) (*models.Entry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	// The counter is advanced first so an id can never be handed out twice,
	// even if saving the collection fails afterwards.
	id, err := kv.NextID(ctx, r.store, NextIDKey, maxID(all)+1)
	if err != nil {
		return nil, err
	}

	e := in.NewEntry(id, r.now())
	all = append(all, e)
	if err := r.save(ctx, all); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *KVRepository) Update(ctx context.Context, id int64, p models.EntryPatch) (*models.Entry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return nil, fmt.Errorf("entry %d: %w", id, common.ErrorNotFound)
	}

	e := all[i]
	p.Apply(&e)
	e.UpdatedAt = timex.NextStamp(r.now(), e.UpdatedAt)
	all[i] = e

	if err := r.save(ctx, all); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *KVRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(all, id)
	if i < 0 {
		return nil
	}
	all = append(all[:i], all[i+1:]...)
	return r.save(ctx, all)
}

func (r *KVRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// SeedDefaults writes an empty collection and counter when they are absent.
func (r *KVRepository) SeedDefaults(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := kv.PutJSONIfAbsent(ctx, r.store, CollectionKey, []models.Entry{}); err != nil {
		return err
	}
	_, err := kv.PutJSONIfAbsent(ctx, r.store, NextIDKey, 1)
	return err
}

func (r *KVRepository) load(ctx context.Context) ([]models.Entry, error) {
	var all []models.Entry
	if _, err := kv.GetJSON(ctx, r.store, CollectionKey, &all); err != nil {
		return nil, err
	}
	for i := range all {
		all[i].Tags = all[i].Tags.Clone()
		all[i].Images = all[i].Images.Clone()
	}
	if all == nil {
		all = []models.Entry{}
	}
	return all, nil
}

func (r *KVRepository) save(ctx context.Context, all []models.Entry) error {
	return kv.PutJSON(ctx, r.store, CollectionKey, all)
}

func maxID(all []models.Entry) int64 {
	var m int64
	for _, e := range all {
		m = max(m, e.ID)
	}
	return m
}

func indexOf(all []models.Entry, id int64) int {
	for i, e := range all {
		if e.ID == id {
			return i
		}
	}
	return -1
}
