package repomanager

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/qup1010/moodlistener/internal/config"
	"github.com/qup1010/moodlistener/internal/logging"
	"github.com/qup1010/moodlistener/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Backend:      backend,
		DatabasePath: filepath.Join(dir, "data", "journal.db"),
		KVPath:       filepath.Join(dir, "data", "journal.json"),
		BusyTimeout:  time.Second,
		LogLevel:     "info",
		TrendWindow:  7,
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := testConfig(t, "postgres")

	m, err := New(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
	assert.Nil(t, m)
	assert.Contains(t, err.Error(), `unknown backend "postgres"`)
}

func TestNew_InitializesEitherBackend(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{config.BackendSQLite, config.BackendKV} {
		t.Run(backend, func(t *testing.T) {
			var buf bytes.Buffer
			m, err := New(ctx, testConfig(t, backend), logging.New(&buf, "info"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = m.Close() })

			all, err := m.Tags().ListAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, 9, all.Len())
			for _, mood := range models.Moods() {
				assert.Len(t, all.For(mood), 3)
			}

			s, err := m.Settings().GetSettings(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.DefaultSettings(), *s)

			p, err := m.Settings().GetProfile(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.DefaultProfile(), *p)

			n, err := m.Entries().Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)

			out := buf.String()
			assert.Contains(t, out, "backend="+backend)
			assert.Contains(t, out, "seeded default records")
		})
	}
}

func TestInit_Idempotent(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{config.BackendSQLite, config.BackendKV} {
		t.Run(backend, func(t *testing.T) {
			m, err := New(ctx, testConfig(t, backend), logging.Discard())
			require.NoError(t, err)
			t.Cleanup(func() { _ = m.Close() })

			require.NoError(t, m.Init(ctx))
			require.NoError(t, m.Init(ctx))

			all, err := m.Tags().ListAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, 9, all.Len())
		})
	}
}

func TestInit_DoesNotRestoreDeletedDefaults(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{config.BackendSQLite, config.BackendKV} {
		t.Run(backend, func(t *testing.T) {
			m, err := New(ctx, testConfig(t, backend), logging.Discard())
			require.NoError(t, err)
			t.Cleanup(func() { _ = m.Close() })

			happy, err := m.Tags().ListByMood(ctx, models.MoodPositive)
			require.NoError(t, err)
			require.NoError(t, m.Tags().DeleteByID(ctx, happy[0].ID))

			dark := true
			_, err = m.Settings().UpdateSettings(ctx, models.SettingsPatch{DarkMode: &dark})
			require.NoError(t, err)

			require.NoError(t, m.Init(ctx))

			all, err := m.Tags().ListAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, 8, all.Len())

			s, err := m.Settings().GetSettings(ctx)
			require.NoError(t, err)
			assert.True(t, s.DarkMode, "seeding must not overwrite user settings")
		})
	}
}

func TestNew_DataSurvivesReopen(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{config.BackendSQLite, config.BackendKV} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)

			m, err := New(ctx, cfg, logging.Discard())
			require.NoError(t, err)
			e, err := m.Entries().Create(ctx, models.EntryInput{
				Date: "2024-05-01", Time: "21:30", Mood: models.MoodPositive, Title: "kept",
				Tags: []string{"happy"},
			})
			require.NoError(t, err)
			_, err = m.Tags().Create(ctx, models.TagInput{Name: "proud", MoodType: models.MoodPositive})
			require.NoError(t, err)
			require.NoError(t, m.Close())

			m, err = New(ctx, cfg, logging.Discard())
			require.NoError(t, err)
			t.Cleanup(func() { _ = m.Close() })

			got, err := m.Entries().GetByID(ctx, e.ID)
			require.NoError(t, err)
			assert.Equal(t, "kept", got.Title)
			assert.True(t, got.CreatedAt.Equal(e.CreatedAt))

			all, err := m.Tags().ListAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, 10, all.Len())

			next, err := m.Entries().Create(ctx, models.EntryInput{Date: "2024-05-02", Time: "08:00", Mood: models.MoodNeutral, Title: "next"})
			require.NoError(t, err)
			assert.Greater(t, next.ID, e.ID)
		})
	}
}
