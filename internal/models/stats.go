package models

// MoodDistribution holds per-mood entry counts and each count's share of the
// total, rounded independently to the nearest whole percent. The percentages
// may therefore not add up to exactly 100.
type MoodDistribution struct {
	Positive        int `json:"positive"`
	Neutral         int `json:"neutral"`
	Negative        int `json:"negative"`
	PositivePercent int `json:"positive_percent"`
	NeutralPercent  int `json:"neutral_percent"`
	NegativePercent int `json:"negative_percent"`
}

// Count returns the number of entries recorded for mood m.
func (d MoodDistribution) Count(m Mood) int {
	switch m {
	case MoodPositive:
		return d.Positive
	case MoodNeutral:
		return d.Neutral
	case MoodNegative:
		return d.Negative
	}
	return 0
}

// Percent returns the rounded share of mood m.
func (d MoodDistribution) Percent(m Mood) int {
	switch m {
	case MoodPositive:
		return d.PositivePercent
	case MoodNeutral:
		return d.NeutralPercent
	case MoodNegative:
		return d.NegativePercent
	}
	return 0
}

// TrendPoint is the number of entries dated Day.
type TrendPoint struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}

// Stats aggregates the whole entry collection at one point in time.
type Stats struct {
	TotalEntries int              `json:"total_entries"`
	StreakDays   int              `json:"streak_days"`
	Distribution MoodDistribution `json:"mood_distribution"`

	// Trend covers Window days ending today, oldest first.
	Trend  []TrendPoint `json:"trend"`
	Window int          `json:"window"`
}
