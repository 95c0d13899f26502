package models

import (
	"fmt"

	"github.com/qup1010/moodlistener/internal/common"
)

// Reminder is one scheduled notification. Days uses 1 (Monday) to 7 (Sunday).
type Reminder struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Enabled bool   `json:"enabled"`
	Days    []int  `json:"days"`
}

// Settings is the singleton application configuration record.
type Settings struct {
	NotificationEnabled bool `json:"notification_enabled"`

	// NotificationTime is the single reminder time of the legacy shape. It is
	// still read to synthesize Reminders for records written before the
	// reminder list existed.
	NotificationTime string `json:"notification_time"`

	Reminders []Reminder `json:"reminders,omitempty"`
	ThemeID   string     `json:"theme_id"`
	DarkMode  bool       `json:"dark_mode"`
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	NotificationEnabled *bool
	NotificationTime    *string
	Reminders           *[]Reminder
	ThemeID             *string
	DarkMode            *bool
}

// Empty reports whether the patch touches no field.
func (p SettingsPatch) Empty() bool {
	return p.NotificationEnabled == nil && p.NotificationTime == nil &&
		p.Reminders == nil && p.ThemeID == nil && p.DarkMode == nil
}

// Validate checks clock formats and reminder weekdays.
func (p SettingsPatch) Validate() error {
	if p.NotificationTime != nil {
		if err := validateClock("notification time", *p.NotificationTime); err != nil {
			return err
		}
	}
	if p.Reminders != nil {
		for _, r := range *p.Reminders {
			if err := validateClock("reminder time", r.Time); err != nil {
				return err
			}
			for _, d := range r.Days {
				if d < 1 || d > 7 {
					return fmt.Errorf("%w: reminder day %d outside 1..7", common.ErrorValidation, d)
				}
			}
		}
	}
	return nil
}

// Apply copies the present fields onto s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.NotificationEnabled != nil {
		s.NotificationEnabled = *p.NotificationEnabled
	}
	if p.NotificationTime != nil {
		s.NotificationTime = *p.NotificationTime
	}
	if p.Reminders != nil {
		s.Reminders = cloneReminders(*p.Reminders)
	}
	if p.ThemeID != nil {
		s.ThemeID = *p.ThemeID
	}
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
}

// AllDays lists every weekday, Monday first.
func AllDays() []int {
	return []int{1, 2, 3, 4, 5, 6, 7}
}

// ResolveReminders returns stored when it is non-empty. Otherwise, for
// records in the legacy shape, it synthesizes a single every-day reminder
// from the legacy time and enabled flag.
func ResolveReminders(stored []Reminder, enabled bool, legacyTime string) []Reminder {
	if len(stored) > 0 {
		return cloneReminders(stored)
	}
	if legacyTime == "" {
		return []Reminder{}
	}
	return []Reminder{{ID: "1", Time: legacyTime, Enabled: enabled, Days: AllDays()}}
}

func cloneReminders(in []Reminder) []Reminder {
	out := make([]Reminder, len(in))
	for i, r := range in {
		r.Days = append([]int(nil), r.Days...)
		out[i] = r
	}
	return out
}

// Profile is the singleton user profile record.
type Profile struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	Username  *string
	AvatarURL *string
}

// Apply copies the present fields onto p.
func (pp ProfilePatch) Apply(p *Profile) {
	if pp.Username != nil {
		p.Username = *pp.Username
	}
	if pp.AvatarURL != nil {
		p.AvatarURL = *pp.AvatarURL
	}
}

