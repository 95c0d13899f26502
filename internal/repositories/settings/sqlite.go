package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/qup1010/moodlistener/internal/dbx"
	"github.com/qup1010/moodlistener/internal/logging"
	"github.com/qup1010/moodlistener/internal/models"
)

// singletonID is the fixed primary key of the settings and user_profile rows.
const singletonID = 1

type SQLiteRepository struct {
	db  *sql.DB
	log logging.Logger
}

func NewSQLiteRepository(db *sql.DB, log logging.Logger) *SQLiteRepository {
	return &SQLiteRepository{db: db, log: log}
}

func (r *SQLiteRepository) GetSettings(ctx context.Context) (*models.Settings, error) {
	return r.getSettings(ctx, r.db)
}

func (r *SQLiteRepository) UpdateSettings(ctx context.Context, p models.SettingsPatch) (*models.Settings, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p = withReminderIDs(p)

	return dbx.WithTxValue(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) (*models.Settings, error) {
		s, err := r.getSettings(ctx, tx)
		if err != nil {
			return nil, err
		}
		p.Apply(s)

		if err := putSettings(ctx, tx, s); err != nil {
			return nil, err
		}
		return r.getSettings(ctx, tx)
	})
}

func (r *SQLiteRepository) GetProfile(ctx context.Context) (*models.Profile, error) {
	return getProfile(ctx, r.db)
}

func (r *SQLiteRepository) UpdateProfile(ctx context.Context, p models.ProfilePatch) (*models.Profile, error) {
	return dbx.WithTxValue(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) (*models.Profile, error) {
		pr, err := getProfile(ctx, tx)
		if err != nil {
			return nil, err
		}
		p.Apply(pr)

		query := `insert into user_profile (id, username, avatar_url) values (?, ?, ?)
			on conflict(id) do update set username = excluded.username, avatar_url = excluded.avatar_url`
		if _, err := tx.ExecContext(ctx, query, singletonID, pr.Username, pr.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to upsert profile: %w", err)
		}
		return getProfile(ctx, tx)
	})
}

// SeedDefaults inserts the default settings and profile rows unless they
// exist. It is meant to run inside the initializer's transaction.
func SeedDefaults(ctx context.Context, db dbx.DBTX) error {
	s := models.DefaultSettings()
	reminders, err := encodeReminders(s.Reminders)
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}

	query := `insert or ignore into settings (id, notification_enabled, notification_time, reminders, theme_id, dark_mode)
		values (?, ?, ?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, query, singletonID, s.NotificationEnabled, s.NotificationTime, reminders, s.ThemeID, s.DarkMode)
	if err != nil {
		return fmt.Errorf("failed to insert default settings: %w", err)
	}

	p := models.DefaultProfile()
	_, err = db.ExecContext(ctx, `insert or ignore into user_profile (id, username, avatar_url) values (?, ?, ?)`,
		singletonID, p.Username, p.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to insert default profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) getSettings(ctx context.Context, db dbx.DBTX) (*models.Settings, error) {
	query := `select notification_enabled, notification_time, reminders, theme_id, dark_mode from settings where id = ?`

	var (
		s         models.Settings
		reminders sql.NullString
	)
	err := db.QueryRowContext(ctx, query, singletonID).
		Scan(&s.NotificationEnabled, &s.NotificationTime, &reminders, &s.ThemeID, &s.DarkMode)
	if dbx.IsNoRows(err) {
		d := models.DefaultSettings()
		return &d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select settings: %w", err)
	}

	stored := decodeReminders(ctx, r.log, []byte(reminders.String))
	s.Reminders = models.ResolveReminders(stored, s.NotificationEnabled, s.NotificationTime)
	return &s, nil
}

func putSettings(ctx context.Context, db dbx.DBTX, s *models.Settings) error {
	reminders, err := encodeReminders(s.Reminders)
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}

	query := `insert into settings (id, notification_enabled, notification_time, reminders, theme_id, dark_mode)
		values (?, ?, ?, ?, ?, ?)
		on conflict(id) do update set
			notification_enabled = excluded.notification_enabled,
			notification_time = excluded.notification_time,
			reminders = excluded.reminders,
			theme_id = excluded.theme_id,
			dark_mode = excluded.dark_mode`
	_, err = db.ExecContext(ctx, query, singletonID, s.NotificationEnabled, s.NotificationTime, reminders, s.ThemeID, s.DarkMode)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}

func getProfile(ctx context.Context, db dbx.DBTX) (*models.Profile, error) {
	var p models.Profile
	err := db.QueryRowContext(ctx, `select username, avatar_url from user_profile where id = ?`, singletonID).
		Scan(&p.Username, &p.AvatarURL)
	if dbx.IsNoRows(err) {
		d := models.DefaultProfile()
		return &d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select profile: %w", err)
	}
	return &p, nil
}

var _ Repository = (*SQLiteRepository)(nil)
