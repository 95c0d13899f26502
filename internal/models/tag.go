package models

import (
	"fmt"
	"strings"

	"github.com/qup1010/moodlistener/internal/common"
)

// Tag is a named label scoped to one mood category.
type Tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	MoodType  Mood   `json:"mood_type"`
	IsDefault bool   `json:"is_default"`
}

// TagInput is the payload for creating a user tag.
type TagInput struct {
	Name     string
	MoodType Mood
}

// Validate rejects blank names and unknown mood categories. Duplicate names
// are allowed.
func (in TagInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: tag name must not be empty", common.ErrorValidation)
	}
	if !in.MoodType.Valid() {
		return fmt.Errorf("%w: unknown mood type %q", common.ErrorValidation, in.MoodType)
	}
	return nil
}

// TagsByMood partitions the tag catalog by mood category.
type TagsByMood struct {
	Positive []Tag `json:"positive"`
	Neutral  []Tag `json:"neutral"`
	Negative []Tag `json:"negative"`
}

// NewTagsByMood returns a partition with empty, non-nil slices.
func NewTagsByMood() *TagsByMood {
	return &TagsByMood{Positive: []Tag{}, Neutral: []Tag{}, Negative: []Tag{}}
}

// Add appends t to the slice of its mood. Tags with an unknown mood are dropped.
func (g *TagsByMood) Add(t Tag) {
	switch t.MoodType {
	case MoodPositive:
		g.Positive = append(g.Positive, t)
	case MoodNeutral:
		g.Neutral = append(g.Neutral, t)
	case MoodNegative:
		g.Negative = append(g.Negative, t)
	}
}

// For returns the tags of mood m.
func (g *TagsByMood) For(m Mood) []Tag {
	switch m {
	case MoodPositive:
		return g.Positive
	case MoodNeutral:
		return g.Neutral
	case MoodNegative:
		return g.Negative
	}
	return nil
}

// Len returns the total number of tags across categories.
func (g *TagsByMood) Len() int {
	return len(g.Positive) + len(g.Neutral) + len(g.Negative)
}
