package settings

import (
	"context"

	"github.com/qup1010/moodlistener/internal/models"
)

// Repository reads and patches the settings and profile singletons.
// Reads never fail because a record is missing: defaults are returned
// instead, without being persisted.
type Repository interface {
	// GetSettings returns the stored settings with reminders resolved from
	// the legacy single-time shape when needed.
	GetSettings(ctx context.Context) (*models.Settings, error)

	// UpdateSettings applies the fields present in p and returns the record
	// as re-read after the write.
	UpdateSettings(ctx context.Context, p models.SettingsPatch) (*models.Settings, error)

	// GetProfile returns the stored profile.
	GetProfile(ctx context.Context) (*models.Profile, error)

	// UpdateProfile applies the fields present in p and returns the record
	// as re-read after the write.
	UpdateProfile(ctx context.Context, p models.ProfilePatch) (*models.Profile, error)
}
