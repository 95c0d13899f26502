package tags

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/qup1010/moodlistener/internal/common"
	"github.com/qup1010/moodlistener/internal/kv"
	"github.com/qup1010/moodlistener/internal/models"
	"github.com/stretchr/testify/assert"
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
CREATE TABLE tags (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  mood_type TEXT NOT NULL CHECK (mood_type IN ('positive', 'neutral', 'negative')),
  is_default INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)
	return db
}

// seeded returns one freshly seeded repository per backend.
func seeded(t *testing.T) map[string]Repository {
	t.Helper()
	ctx := context.Background()

	db := setupDB(t)
	require.NoError(t, SeedDefaults(ctx, db))

	kvRepo := NewKVRepository(kv.NewMemoryStore())
	wrote, err := kvRepo.SeedDefaults(ctx)
	require.NoError(t, err)
	require.True(t, wrote)

	return map[string]Repository{
		"sqlite": NewSQLiteRepository(db),
		"kv":     kvRepo,
	}
}

func names(list []models.Tag) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Name)
	}
	return out
}

func TestSeed_NineDefaultTags(t *testing.T) {
	ctx := context.Background()

	for name, r := range seeded(t) {
		t.Run(name, func(t *testing.T) {
			all, err := r.ListAll(ctx)
			require.NoError(t, err)
			require.Equal(t, 9, all.Len())

			for _, m := range models.Moods() {
				list := all.For(m)
				assert.Len(t, list, 3, "mood %s", m)
				for _, tag := range list {
					assert.True(t, tag.IsDefault)
					assert.Equal(t, m, tag.MoodType)
				}
			}
			assert.Equal(t, []string{"happy", "excited", "grateful"}, names(all.Positive))
			assert.Equal(t, []string{"calm", "thoughtful", "tired"}, names(all.Neutral))
			assert.Equal(t, []string{"sad", "anxious", "angry"}, names(all.Negative))
		})
	}
}

func TestCreate_AppendsInInsertionOrderAndKeepsDuplicates(t *testing.T) {
	ctx := context.Background()

	for name, r := range seeded(t) {
		t.Run(name, func(t *testing.T) {
			a, err := r.Create(ctx, models.TagInput{Name: "proud", MoodType: models.MoodPositive})
			require.NoError(t, err)
			assert.False(t, a.IsDefault)
			assert.Greater(t, a.ID, int64(9))

			b, err := r.Create(ctx, models.TagInput{Name: "happy", MoodType: models.MoodPositive})
			require.NoError(t, err)
			assert.Greater(t, b.ID, a.ID)

			list, err := r.ListByMood(ctx, models.MoodPositive)
			require.NoError(t, err)
			assert.Equal(t, []string{"happy", "excited", "grateful", "proud", "happy"}, names(list))

			got, err := r.GetByID(ctx, b.ID)
			require.NoError(t, err)
			assert.Equal(t, *b, *got)
		})
	}
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()

	for name, r := range seeded(t) {
		t.Run(name, func(t *testing.T) {
			_, err := r.Create(ctx, models.TagInput{Name: " ", MoodType: models.MoodNeutral})
			require.ErrorIs(t, err, common.ErrorValidation)

			_, err = r.Create(ctx, models.TagInput{Name: "meh", MoodType: "bored"})
			require.ErrorIs(t, err, common.ErrorValidation)

			_, err = r.ListByMood(ctx, "bored")
			require.ErrorIs(t, err, common.ErrorValidation)

			all, err := r.ListAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, 9, all.Len())
		})
	}
}

func TestDeleteByID(t *testing.T) {
	ctx := context.Background()

	for name, r := range seeded(t) {
		t.Run(name, func(t *testing.T) {
			neutral, err := r.ListByMood(ctx, models.MoodNeutral)
			require.NoError(t, err)
			victim := neutral[1]

			require.NoError(t, r.DeleteByID(ctx, victim.ID))
			require.NoError(t, r.DeleteByID(ctx, victim.ID))
			require.NoError(t, r.DeleteByID(ctx, 4242))

			_, err = r.GetByID(ctx, victim.ID)
			require.ErrorIs(t, err, common.ErrorNotFound)

			neutral, err = r.ListByMood(ctx, models.MoodNeutral)
			require.NoError(t, err)
			assert.Equal(t, []string{"calm", "tired"}, names(neutral))

			// Deleted ids are not handed out again.
			created, err := r.Create(ctx, models.TagInput{Name: "sleepy", MoodType: models.MoodNeutral})
			require.NoError(t, err)
			assert.Greater(t, created.ID, int64(9))
		})
	}
}

func TestSQLiteRepository_ErrorsWhenDBClosed(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.ListAll(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to select tags")

	_, err = r.Create(ctx, models.TagInput{Name: "x", MoodType: models.MoodNeutral})
	require.Contains(t, err.Error(), "failed to insert tag")

	err = r.DeleteByID(ctx, 1)
	require.Contains(t, err.Error(), "failed to delete tag")

	_, err = r.GetByID(ctx, 1)
	require.Contains(t, err.Error(), "query row scan failed")

	require.Error(t, SeedDefaults(ctx, db))
}

func TestKVRepository_SeedOnlyWhenAbsent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	r := NewKVRepository(store)

	_, err := r.SeedDefaults(ctx)
	require.NoError(t, err)
	require.NoError(t, r.DeleteByID(ctx, 1))

	wrote, err := r.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.False(t, wrote)

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, all.Len(), "a user-edited catalog must not be reseeded")

	raw, err := store.Get(ctx, NextIDKey)
	require.NoError(t, err)
	assert.Equal(t, "10", string(raw))
}

func TestKVRepository_CorruptCatalog(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, CollectionKey, []byte(`[{`)))

	_, err := NewKVRepository(store).ListAll(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode tags")
}

func TestSQLiteRepository_DriverFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("insert into tags")).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no rowid")))
	_, err = r.Create(ctx, models.TagInput{Name: "focused", MoodType: models.MoodNeutral})
	assert.EqualError(t, err, "failed to get tag id: no rowid")

	rows := sqlmock.NewRows([]string{"id", "name", "mood_type", "is_default"}).
		AddRow(1, "happy", "positive", true).
		AddRow(2, "excited", "positive", true).
		RowError(1, errors.New("page corrupt"))
	mock.ExpectQuery("select .* from tags").WillReturnRows(rows)
	_, err = r.ListByMood(ctx, models.MoodPositive)
	assert.EqualError(t, err, "failed to iterate tags: page corrupt")

	require.NoError(t, mock.ExpectationsWereMet())
}
