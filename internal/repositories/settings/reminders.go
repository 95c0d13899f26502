package settings

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/qup1010/moodlistener/internal/logging"
	"github.com/qup1010/moodlistener/internal/models"
)

// decodeReminders parses a stored reminder list. Empty or unreadable input
// yields nil, which the legacy resolution then replaces.
func decodeReminders(ctx context.Context, log logging.Logger, raw []byte) []models.Reminder {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []models.Reminder
	if err := json.Unmarshal(raw, &list); err != nil {
		log.Warn(ctx, "ignoring unreadable stored reminders", "error", err)
		return nil
	}
	return list
}

func encodeReminders(list []models.Reminder) (string, error) {
	if list == nil {
		list = []models.Reminder{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// withReminderIDs returns p with a fresh id on every reminder that has none.
// The caller's slice is not modified.
func withReminderIDs(p models.SettingsPatch) models.SettingsPatch {
	if p.Reminders == nil {
		return p
	}

	list := make([]models.Reminder, len(*p.Reminders))
	copy(list, *p.Reminders)
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = uuid.NewString()
		}
	}
	p.Reminders = &list
	return p
}
