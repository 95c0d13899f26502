package kv

import (
	"context"
	"fmt"

	"github.com/qup1010/moodlistener/internal/dbx"
)

const (
	sqlGetValue  = `SELECT value FROM metadata WHERE key = ?`
	sqlPutValue  = `INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)`
	sqlDelKey    = `DELETE FROM metadata WHERE key = ?`
	sqlDelAll    = `DELETE FROM metadata`
	sqlListPairs = `SELECT key, value FROM metadata ORDER BY key`
)

// SQLiteStore keeps keys in the metadata table of the journal database.
// It borrows its handle, which may be a transaction, so Close does nothing.
type SQLiteStore struct {
	db dbx.DBTX
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	switch err := s.db.QueryRowContext(ctx, sqlGetValue, key).Scan(&out); {
	case dbx.IsNoRows(err):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	if out == nil {
		// NOT NULL column; an empty blob can still scan as nil.
		out = []byte{}
	}
	return out, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, sqlPutValue, key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, sqlDelKey, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqlDelAll); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx, sqlListPairs)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	all := map[string][]byte{}
	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		all[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return all, nil
}

func (s *SQLiteStore) Close() error { return nil }
