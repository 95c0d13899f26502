package entries

import (
	"context"
	"testing"

	"github.com/qup1010/moodlistener/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepository_StoresJSONListColumns(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e, err := r.Create(ctx, models.EntryInput{
		Date: "2024-05-01", Time: "08:00", Mood: models.MoodPositive, Title: "t",
		Tags: []string{"happy"}, Images: []string{"a.png", "b.png"},
	})
	require.NoError(t, err)

	var tags, images, created string
	err = db.QueryRow(`SELECT tags, images, created_at FROM entries WHERE id = ?`, e.ID).Scan(&tags, &images, &created)
	require.NoError(t, err)
	assert.Equal(t, `["happy"]`, tags)
	assert.Equal(t, `["a.png","b.png"]`, images)
	assert.Len(t, created, len("2024-05-01T08:00:00.000000000Z"))
}

func TestSQLiteRepository_ReadsNullLists(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO entries (date, time, mood, title, tags, images, created_at, updated_at)
		VALUES ('2024-01-01', '09:00', 'neutral', 'legacy', '', '[]', '2024-01-01T09:00:00Z', '2024-01-01T09:00:00Z')`)
	require.NoError(t, err)

	list, err := NewSQLiteRepository(db).List(ctx, models.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StringList{}, list[0].Tags)
	assert.Equal(t, 9, list[0].CreatedAt.Hour())
}

func TestSQLiteRepository_BadTimestamp(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO entries (date, time, mood, title, created_at, updated_at)
		VALUES ('2024-01-01', '09:00', 'neutral', 'x', 'garbage', 'garbage')`)
	require.NoError(t, err)

	_, err = NewSQLiteRepository(db).List(context.Background(), models.EntryFilter{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad created_at")
}

func TestSQLiteRepository_ErrorsWhenDBClosed(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.List(ctx, models.EntryFilter{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to select entries")

	_, err = r.Create(ctx, models.EntryInput{Date: "2024-05-01", Time: "08:00", Mood: models.MoodPositive, Title: "t"})
	require.Contains(t, err.Error(), "failed to insert entry")

	err = r.DeleteByID(ctx, 1)
	require.Contains(t, err.Error(), "failed to delete entry")

	_, err = r.Count(ctx)
	require.Contains(t, err.Error(), "failed to count entries")

	_, err = r.Update(ctx, 1, models.EntryPatch{})
	require.Error(t, err)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\ ok`, escapeLike(`50% off_now \ ok`))
}
