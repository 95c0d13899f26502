// Package repomanager opens the configured storage backend, prepares it for
// use and hands out the repositories bound to it.
//
// The backend is chosen once, in New, from config.Config.Backend. Callers
// only see the RepositoryManager interface, so nothing above this package
// branches on the backend.
package repomanager

import (
	"context"
	"fmt"

	"github.com/qup1010/moodlistener/internal/config"
	"github.com/qup1010/moodlistener/internal/logging"
	"github.com/qup1010/moodlistener/internal/repositories/entries"
	"github.com/qup1010/moodlistener/internal/repositories/settings"
	"github.com/qup1010/moodlistener/internal/repositories/tags"
)

// RepositoryManager owns one opened store and the repositories over it.
type RepositoryManager interface {
	// Init creates the physical structures and seeds the default records.
	// Running it again on an initialized store changes nothing.
	Init(ctx context.Context) error

	Entries() entries.Repository
	Tags() tags.Repository
	Settings() settings.Repository

	// Close releases the store. Repositories must not be used afterwards.
	Close() error
}

// New opens and initializes the backend named by cfg. On failure any
// partially opened store is closed before returning.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (RepositoryManager, error) {
	log = log.With("backend", cfg.Backend)

	var m RepositoryManager
	switch cfg.Backend {
	case config.BackendSQLite:
		sm, err := OpenSQLite(ctx, cfg.DatabasePath, cfg.BusyTimeout, log)
		if err != nil {
			return nil, err
		}
		m = sm
	case config.BackendKV:
		km, err := OpenKV(cfg.KVPath, log)
		if err != nil {
			return nil, err
		}
		m = km
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if err := m.Init(ctx); err != nil {
		_ = m.Close()
		return nil, err
	}
	return m, nil
}
