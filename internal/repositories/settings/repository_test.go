package settings

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/qup1010/moodlistener/internal/common"
	"github.com/qup1010/moodlistener/internal/kv"
	"github.com/qup1010/moodlistener/internal/logging"
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
CREATE TABLE settings (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  notification_enabled INTEGER NOT NULL DEFAULT 1,
  notification_time TEXT NOT NULL DEFAULT '20:00',
  reminders TEXT,
  theme_id TEXT NOT NULL DEFAULT 'classic',
  dark_mode INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE user_profile (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  username TEXT NOT NULL DEFAULT 'friend',
  avatar_url TEXT NOT NULL DEFAULT ''
);
`)
	require.NoError(t, err)
	return db
}

func newTestLogger() (logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))), &buf
}

type backend struct {
	repo Repository
	log  *bytes.Buffer

	// writeLegacy stores a settings record with the given enabled flag, time
	// and raw reminders value (empty for none).
	writeLegacy func(t *testing.T, enabled bool, at, reminders string)
	seed        func(t *testing.T)
}

func backends(t *testing.T) map[string]backend {
	t.Helper()
	ctx := context.Background()

	db := setupDB(t)
	sqliteLog, sqliteBuf := newTestLogger()

	store := kv.NewMemoryStore()
	kvLog, kvBuf := newTestLogger()
	kvRepo := NewKVRepository(store, kvLog)

	return map[string]backend{
		"sqlite": {
			repo: NewSQLiteRepository(db, sqliteLog),
			log:  sqliteBuf,
			writeLegacy: func(t *testing.T, enabled bool, at, reminders string) {
				var raw any
				if reminders != "" {
					raw = reminders
				}
				_, err := db.Exec(`INSERT INTO settings (id, notification_enabled, notification_time, reminders) VALUES (1, ?, ?, ?)`,
					enabled, at, raw)
				require.NoError(t, err)
			},
			seed: func(t *testing.T) { require.NoError(t, SeedDefaults(ctx, db)) },
		},
		"kv": {
			repo: kvRepo,
			log:  kvBuf,
			writeLegacy: func(t *testing.T, enabled bool, at, reminders string) {
				doc := map[string]any{"notification_enabled": enabled, "notification_time": at}
				if reminders != "" {
					doc["reminders"] = json.RawMessage(reminders)
				}
				require.NoError(t, kv.PutJSON(ctx, store, SettingsKey, doc))
			},
			seed: func(t *testing.T) { require.NoError(t, kvRepo.SeedDefaults(ctx)) },
		},
	}
}

func TestGetSettings_DefaultsWhenMissing(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := b.repo.GetSettings(ctx)
			require.NoError(t, err)

			want := models.DefaultSettings()
			if diff := cmp.Diff(&want, got); diff != "" {
				t.Fatalf("unexpected settings (-want +got):\n%s", diff)
			}

			p, err := b.repo.GetProfile(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.DefaultProfile(), *p)
		})
	}
}

func TestGetSettings_Seeded(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b.seed(t)
			b.seed(t)

			got, err := b.repo.GetSettings(ctx)
			require.NoError(t, err)
			want := models.DefaultSettings()
			if diff := cmp.Diff(&want, got); diff != "" {
				t.Fatalf("unexpected settings (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetSettings_LegacyShape(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b.writeLegacy(t, true, "08:30", "")

			got, err := b.repo.GetSettings(ctx)
			require.NoError(t, err)
			require.Len(t, got.Reminders, 1)

			r := got.Reminders[0]
			assert.Equal(t, "08:30", r.Time)
			assert.True(t, r.Enabled)
			assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, r.Days)
			assert.Equal(t, "08:30", got.NotificationTime)
			assert.Equal(t, models.DefaultThemeID, got.ThemeID)
		})
	}
}

func TestGetSettings_UnreadableRemindersFallBackToLegacy(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b.writeLegacy(t, false, "07:15", `{"not":"a list"}`)

			got, err := b.repo.GetSettings(ctx)
			require.NoError(t, err)
			require.Len(t, got.Reminders, 1)
			assert.Equal(t, "07:15", got.Reminders[0].Time)
			assert.False(t, got.Reminders[0].Enabled)

			out := b.log.String()
			assert.Contains(t, out, "level=WARN")
			assert.Contains(t, out, "ignoring unreadable stored reminders")
		})
	}
}

func TestUpdateSettings_Partial(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b.seed(t)

			dark := true
			got, err := b.repo.UpdateSettings(ctx, models.SettingsPatch{DarkMode: &dark})
			require.NoError(t, err)

			want := models.DefaultSettings()
			want.DarkMode = true
			if diff := cmp.Diff(&want, got); diff != "" {
				t.Fatalf("unexpected settings (-want +got):\n%s", diff)
			}

			again, err := b.repo.GetSettings(ctx)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestUpdateSettings_CreatesMissingRecord(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			theme := "ocean"
			got, err := b.repo.UpdateSettings(ctx, models.SettingsPatch{ThemeID: &theme})
			require.NoError(t, err)
			assert.Equal(t, "ocean", got.ThemeID)
			assert.True(t, got.NotificationEnabled)
			assert.Len(t, got.Reminders, 1)
		})
	}
}

func TestUpdateSettings_RemindersPersistExtendedShape(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b.writeLegacy(t, true, "08:30", "")

			in := []models.Reminder{
				{ID: "morning", Time: "07:00", Enabled: true, Days: []int{1, 2, 3, 4, 5}},
				{Time: "22:00", Enabled: false, Days: []int{6, 7}},
			}
			got, err := b.repo.UpdateSettings(ctx, models.SettingsPatch{Reminders: &in})
			require.NoError(t, err)

			require.Len(t, got.Reminders, 2)
			assert.Equal(t, "morning", got.Reminders[0].ID)
			_, err = uuid.Parse(got.Reminders[1].ID)
			assert.NoError(t, err, "missing reminder ids are generated")
			assert.Equal(t, "", in[1].ID, "caller slice must not be modified")

			// The legacy time is kept as written.
			assert.Equal(t, "08:30", got.NotificationTime)

			again, err := b.repo.GetSettings(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(got, again); diff != "" {
				t.Fatalf("re-read differs (-update +get):\n%s", diff)
			}
		})
	}
}

func TestUpdateSettings_Validation(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			b.seed(t)

			bad := "25:00"
			_, err := b.repo.UpdateSettings(ctx, models.SettingsPatch{NotificationTime: &bad})
			require.ErrorIs(t, err, common.ErrorValidation)

			rem := []models.Reminder{{Time: "09:00", Days: []int{0}}}
			_, err = b.repo.UpdateSettings(ctx, models.SettingsPatch{Reminders: &rem})
			require.ErrorIs(t, err, common.ErrorValidation)

			got, err := b.repo.GetSettings(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.DefaultReminderTime, got.NotificationTime)
		})
	}
}

func TestUpdateProfile_Partial(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			avatar := "file:///avatar.png"
			p, err := b.repo.UpdateProfile(ctx, models.ProfilePatch{AvatarURL: &avatar})
			require.NoError(t, err)
			assert.Equal(t, models.Profile{Username: models.DefaultUsername, AvatarURL: avatar}, *p)

			name := "Mia"
			p, err = b.repo.UpdateProfile(ctx, models.ProfilePatch{Username: &name})
			require.NoError(t, err)
			assert.Equal(t, models.Profile{Username: "Mia", AvatarURL: avatar}, *p)

			got, err := b.repo.GetProfile(ctx)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
}

func TestSQLiteRepository_ErrorsWhenDBClosed(t *testing.T) {
	db := setupDB(t)
	log, _ := newTestLogger()
	r := NewSQLiteRepository(db, log)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.GetSettings(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to select settings")

	_, err = r.GetProfile(ctx)
	require.Contains(t, err.Error(), "failed to select profile")

	_, err = r.UpdateSettings(ctx, models.SettingsPatch{})
	require.Error(t, err)

	require.Error(t, SeedDefaults(ctx, db))
}

func TestKVRepository_CorruptProfile(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, ProfileKey, []byte(`nope`)))
	log, _ := newTestLogger()

	_, err := NewKVRepository(store, log).GetProfile(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode profile")
}
