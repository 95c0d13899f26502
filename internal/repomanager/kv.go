package repomanager

import (
	"context"
	"fmt"

	"github.com/qup1010/moodlistener/internal/common"
	"github.com/qup1010/moodlistener/internal/kv"
	"github.com/qup1010/moodlistener/internal/logging"
	"github.com/qup1010/moodlistener/internal/repositories/entries"
	"github.com/qup1010/moodlistener/internal/repositories/settings"
	"github.com/qup1010/moodlistener/internal/repositories/tags"
)

// KeyPrefix namespaces every key the journal writes to a kv.Store.
const KeyPrefix = "moodlistener_"

// KVRepositoryManager owns a kv.Store holding one JSON document per
// collection.
type KVRepositoryManager struct {
	store kv.Store
	log   logging.Logger

	entries  *entries.KVRepository
	tags     *tags.KVRepository
	settings *settings.KVRepository
}

// OpenKV opens the JSON file store at path, or an in-memory store when path
// is empty.
func OpenKV(path string, log logging.Logger) (*KVRepositoryManager, error) {
	if path == "" {
		log.Info(context.Background(), "using in-memory store")
		return NewKVRepositoryManager(kv.NewMemoryStore(), log), nil
	}

	fs, err := kv.OpenFileStore(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
	}
	log.Info(context.Background(), "opened store", "path", path)
	return NewKVRepositoryManager(fs, log), nil
}

// NewKVRepositoryManager takes ownership of store. Keys are written under
// KeyPrefix so the store can be shared with other data.
func NewKVRepositoryManager(store kv.Store, log logging.Logger) *KVRepositoryManager {
	scoped := kv.Prefixed(store, KeyPrefix)
	return &KVRepositoryManager{
		store:    scoped,
		log:      log,
		entries:  entries.NewKVRepository(scoped),
		tags:     tags.NewKVRepository(scoped),
		settings: settings.NewKVRepository(scoped, log),
	}
}

func (m *KVRepositoryManager) Entries() entries.Repository {
	return m.entries
}

func (m *KVRepositoryManager) Tags() tags.Repository {
	return m.tags
}

func (m *KVRepositoryManager) Settings() settings.Repository {
	return m.settings
}

// Init writes every default document whose key is absent.
func (m *KVRepositoryManager) Init(ctx context.Context) error {
	if err := m.entries.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("%w: failed to seed entries: %w", common.ErrorStorageUnavailable, err)
	}
	seeded, err := m.tags.SeedDefaults(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to seed tags: %w", common.ErrorStorageUnavailable, err)
	}
	if err := m.settings.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("%w: failed to seed settings: %w", common.ErrorStorageUnavailable, err)
	}

	if seeded {
		m.log.Info(ctx, "seeded default records")
	}
	return nil
}

func (m *KVRepositoryManager) Close() error {
	if err := m.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

var _ RepositoryManager = (*KVRepositoryManager)(nil)
