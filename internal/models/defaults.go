package models

const (
	// DefaultThemeID names the palette used until the user picks another.
	DefaultThemeID = "classic"

	// DefaultReminderTime is the seeded daily reminder time.
	DefaultReminderTime = "20:00"

	// DefaultUsername is the placeholder display name.
	DefaultUsername = "friend"
)

// DefaultSettings returns the record seeded on first start and served when
// the stored record is missing.
func DefaultSettings() Settings {
	return Settings{
		NotificationEnabled: true,
		NotificationTime:    DefaultReminderTime,
		Reminders: []Reminder{
			{ID: "1", Time: DefaultReminderTime, Enabled: true, Days: AllDays()},
		},
		ThemeID:  DefaultThemeID,
		DarkMode: false,
	}
}

// DefaultProfile returns the placeholder profile.
func DefaultProfile() Profile {
	return Profile{Username: DefaultUsername}
}

// DefaultTags returns the seed catalog, three tags per mood in insertion
// order. IDs are left zero for the store to assign.
func DefaultTags() []Tag {
	seed := []struct {
		mood  Mood
		names []string
	}{
		{MoodPositive, []string{"happy", "excited", "grateful"}},
		{MoodNeutral, []string{"calm", "thoughtful", "tired"}},
		{MoodNegative, []string{"sad", "anxious", "angry"}},
	}

	tags := make([]Tag, 0, 9)
	for _, s := range seed {
		for _, name := range s.names {
			tags = append(tags, Tag{Name: name, MoodType: s.mood, IsDefault: true})
		}
	}
	return tags
}
