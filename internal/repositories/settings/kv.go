package settings

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/qup1010/moodlistener/internal/kv"
	"github.com/qup1010/moodlistener/internal/logging"
	"github.com/qup1010/moodlistener/internal/models"
)

const (
	SettingsKey = "settings"
	ProfileKey  = "profile"
)

// settingsDoc is the stored settings document. Reminders stay raw so that a
// damaged list does not make the whole document unreadable.
type settingsDoc struct {
	NotificationEnabled bool            `json:"notification_enabled"`
	NotificationTime    string          `json:"notification_time"`
	Reminders           json.RawMessage `json:"reminders,omitempty"`
	ThemeID             string          `json:"theme_id"`
	DarkMode            bool            `json:"dark_mode"`
}

// KVRepository implements Repository on top of a kv.Store.
type KVRepository struct {
	mu    sync.Mutex
	store kv.Store
	log   logging.Logger
}

func NewKVRepository(store kv.Store, log logging.Logger) *KVRepository {
	return &KVRepository{store: store, log: log}
}

func (r *KVRepository) GetSettings(ctx context.Context) (*models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getSettings(ctx)
}

func (r *KVRepository) UpdateSettings(ctx context.Context, p models.SettingsPatch) (*models.Settings, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p = withReminderIDs(p)

	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.getSettings(ctx)
	if err != nil {
		return nil, err
	}
	p.Apply(s)

	if err := kv.PutJSON(ctx, r.store, SettingsKey, s); err != nil {
		return nil, err
	}
	return r.getSettings(ctx)
}

func (r *KVRepository) GetProfile(ctx context.Context) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getProfile(ctx)
}

func (r *KVRepository) UpdateProfile(ctx context.Context, p models.ProfilePatch) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pr, err := r.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	p.Apply(pr)

	if err := kv.PutJSON(ctx, r.store, ProfileKey, pr); err != nil {
		return nil, err
	}
	return r.getProfile(ctx)
}

// SeedDefaults writes the default settings and profile documents where they
// are absent.
func (r *KVRepository) SeedDefaults(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := kv.PutJSONIfAbsent(ctx, r.store, SettingsKey, models.DefaultSettings()); err != nil {
		return err
	}
	_, err := kv.PutJSONIfAbsent(ctx, r.store, ProfileKey, models.DefaultProfile())
	return err
}

func (r *KVRepository) getSettings(ctx context.Context) (*models.Settings, error) {
	d := models.DefaultSettings()
	doc := settingsDoc{
		NotificationEnabled: d.NotificationEnabled,
		NotificationTime:    d.NotificationTime,
		ThemeID:             d.ThemeID,
		DarkMode:            d.DarkMode,
	}

	found, err := kv.GetJSON(ctx, r.store, SettingsKey, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return &d, nil
	}

	stored := decodeReminders(ctx, r.log, doc.Reminders)
	return &models.Settings{
		NotificationEnabled: doc.NotificationEnabled,
		NotificationTime:    doc.NotificationTime,
		Reminders:           models.ResolveReminders(stored, doc.NotificationEnabled, doc.NotificationTime),
		ThemeID:             doc.ThemeID,
		DarkMode:            doc.DarkMode,
	}, nil
}

func (r *KVRepository) getProfile(ctx context.Context) (*models.Profile, error) {
	p := models.DefaultProfile()
	if _, err := kv.GetJSON(ctx, r.store, ProfileKey, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

var _ Repository = (*KVRepository)(nil)
