package entries

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/qup1010/moodlistener/internal/kv"
	"github.com/qup1010/moodlistener/internal/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date TEXT NOT NULL,
  time TEXT NOT NULL,
  mood TEXT NOT NULL CHECK (mood IN ('positive', 'neutral', 'negative')),
  title TEXT NOT NULL,
  content TEXT NOT NULL DEFAULT '',
  tags TEXT NOT NULL DEFAULT '[]',
  location TEXT NOT NULL DEFAULT '',
  images TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

// fakeClock returns a time source that advances one second per call.
func fakeClock() func() time.Time {
	var mu sync.Mutex
	cur := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}

// backends returns a fresh repository per implementation so every contract
// test runs against both storage backends.
func backends(t *testing.T) map[string]Repository {
	t.Helper()
	return map[string]Repository{
		"sqlite": NewSQLiteRepository(setupDB(t)).WithClock(fakeClock()),
		"kv":     NewKVRepository(kv.NewMemoryStore()).WithClock(fakeClock()),
	}
}

func ptr[T any](v T) *T { return &v }

func entryIDs(list []models.Entry) []int64 {
	out := make([]int64, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}
