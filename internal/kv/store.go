// Package kv defines the key-value store the key-value storage backend is
// built on, with three implementations:
//
//   - MemoryStore keeps everything in process memory (tests, throwaway runs);
//   - FileStore persists a JSON document on disk, rewritten on every change;
//   - SQLiteStore uses the metadata table of the relational database and
//     holds bookkeeping such as the seed marker.
//
// Values are opaque bytes. A missing key is reported as (nil, nil) by Get,
// never as an error.
package kv

import "context"

// Store is a flat byte-valued key-value store.
type Store interface {
	// Get returns the value stored under key, or (nil, nil) if there is none.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns a copy of every key and value.
	List(ctx context.Context) (map[string][]byte, error)

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
