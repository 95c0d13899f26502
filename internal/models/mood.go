package models

import (
	"fmt"

	"github.com/qup1010/moodlistener/internal/common"
)

// Mood is the three-way classification every entry and tag belongs to.
type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNeutral  Mood = "neutral"
	MoodNegative Mood = "negative"
)

// Moods returns all mood categories in display order.
func Moods() []Mood {
	return []Mood{MoodPositive, MoodNeutral, MoodNegative}
}

// Valid reports whether m is one of the known categories.
func (m Mood) Valid() bool {
	switch m {
	case MoodPositive, MoodNeutral, MoodNegative:
		return true
	}
	return false
}

// ParseMood converts s into a Mood, rejecting unknown values.
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown mood %q", common.ErrorValidation, s)
	}
	return m, nil
}
