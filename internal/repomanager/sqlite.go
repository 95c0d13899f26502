package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/qup1010/moodlistener/internal/common"
	"github.com/qup1010/moodlistener/internal/dbx"
	"github.com/qup1010/moodlistener/internal/filex"
	"github.com/qup1010/moodlistener/internal/kv"
	"github.com/qup1010/moodlistener/internal/logging"
	"github.com/qup1010/moodlistener/internal/migrations"
	"github.com/qup1010/moodlistener/internal/repositories/entries"
	"github.com/qup1010/moodlistener/internal/repositories/settings"
	"github.com/qup1010/moodlistener/internal/repositories/tags"
	"github.com/qup1010/moodlistener/internal/timex"

	_ "modernc.org/sqlite"
)

// SeededAtKey is the metadata key recording when the defaults were seeded.
const SeededAtKey = "seeded_at"

// SQLiteRepositoryManager owns a single-connection SQLite database.
type SQLiteRepositoryManager struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time

	entries  *entries.SQLiteRepository
	tags     *tags.SQLiteRepository
	settings *settings.SQLiteRepository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// OpenSQLite opens the database at path, creating its directory if needed.
// The returned manager is not initialized yet; see Init.
func OpenSQLite(ctx context.Context, path string, busyTimeout time.Duration, log logging.Logger) (*SQLiteRepositoryManager, error) {
	if !filex.IsMemoryDSN(path) {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", common.ErrorStorageUnavailable, err)
	}

	m, err := NewSQLiteRepositoryManager(ctx, db, busyTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info(ctx, "opened database", "path", path)
	return m, nil
}

// NewSQLiteRepositoryManager takes ownership of db, restricts it to one
// connection and applies the connection pragmas.
func NewSQLiteRepositoryManager(ctx context.Context, db *sql.DB, busyTimeout time.Duration, log logging.Logger) (*SQLiteRepositoryManager, error) {
	// One connection keeps pragmas in effect and serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()),
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return nil, fmt.Errorf("%w: failed to apply %q: %w", common.ErrorStorageUnavailable, p, err)
		}
	}

	return &SQLiteRepositoryManager{
		db:       db,
		log:      log,
		now:      time.Now,
		entries:  entries.NewSQLiteRepository(db),
		tags:     tags.NewSQLiteRepository(db),
		settings: settings.NewSQLiteRepository(db, log),
	}, nil
}

func (m *SQLiteRepositoryManager) Entries() entries.Repository {
	return m.entries
}

func (m *SQLiteRepositoryManager) Tags() tags.Repository {
	return m.tags
}

func (m *SQLiteRepositoryManager) Settings() settings.Repository {
	return m.settings
}

// DB exposes the owned connection for tooling such as backups.
func (m *SQLiteRepositoryManager) DB() *sql.DB {
	return m.db
}

func (m *SQLiteRepositoryManager) Init(ctx context.Context) error {
	if err := m.RunMigrations(ctx); err != nil {
		return fmt.Errorf("%w: failed to migrate database: %w", common.ErrorStorageUnavailable, err)
	}
	m.log.Info(ctx, "schema up to date")
	if err := m.seed(ctx); err != nil {
		return fmt.Errorf("%w: failed to seed database: %w", common.ErrorStorageUnavailable, err)
	}
	return nil
}

// RunMigrations applies the embedded schema migrations with goose.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(gooseLogger{ctx: ctx, log: m.log})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

// seed inserts the default tags, settings and profile in one transaction,
// once per database. A user who deletes default tags does not get them back.
func (m *SQLiteRepositoryManager) seed(ctx context.Context) error {
	seeded := false

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := kv.NewSQLiteStore(tx)

		mark, err := meta.Get(ctx, SeededAtKey)
		if err != nil {
			return err
		}
		if mark != nil {
			return nil
		}

		if err := tags.SeedDefaults(ctx, tx); err != nil {
			return err
		}
		if err := settings.SeedDefaults(ctx, tx); err != nil {
			return err
		}
		seeded = true
		return meta.Set(ctx, SeededAtKey, []byte(timex.FormatStamp(m.now())))
	})
	if err != nil {
		return err
	}

	if seeded {
		m.log.Info(ctx, "seeded default records")
	}
	return nil
}

func (m *SQLiteRepositoryManager) Close() error {
	if err := m.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	m.log.Info(context.Background(), "closed database")
	return nil
}

// gooseLogger routes goose output into the structured log.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Debug(l.ctx, "migrate", "detail", fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(l.ctx, "migrate", "detail", fmt.Sprintf(format, v...))
}

var _ RepositoryManager = (*SQLiteRepositoryManager)(nil)
