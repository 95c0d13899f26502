package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/qup1010/moodlistener/internal/common"
	"github.com/qup1010/moodlistener/internal/timex"
)

// Entry is a single journaled mood record.
type Entry struct {
	// ID is assigned by the store and never reused after deletion.
	ID int64 `json:"id"`

	// Date (YYYY-MM-DD) and Time (HH:MM) are supplied by the caller and
	// together determine recency ordering.
	Date string `json:"date"`
	Time string `json:"time"`

	Mood     Mood   `json:"mood"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Location string `json:"location"`

	// Tags holds tag names, not tag ids. Deleting a tag leaves them untouched.
	Tags StringList `json:"tags"`

	// Images holds opaque image references in display order.
	Images StringList `json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryInput is the payload for creating an entry.
type EntryInput struct {
	Date     string
	Time     string
	Mood     Mood
	Title    string
	Content  string
	Tags     []string
	Location string
	Images   []string
}

// Validate checks the required fields and their formats.
func (in EntryInput) Validate() error {
	if err := validateDate(in.Date); err != nil {
		return err
	}
	if err := validateClock("time", in.Time); err != nil {
		return err
	}
	if !in.Mood.Valid() {
		return fmt.Errorf("%w: unknown mood %q", common.ErrorValidation, in.Mood)
	}
	return validateTitle(in.Title)
}

// NewEntry materializes the input as a stored entry with the given id and
// creation time. Optional lists default to empty.
func (in EntryInput) NewEntry(id int64, now time.Time) Entry {
	now = now.UTC().Round(0)
	return Entry{
		ID:        id,
		Date:      in.Date,
		Time:      in.Time,
		Mood:      in.Mood,
		Title:     in.Title,
		Content:   in.Content,
		Location:  in.Location,
		Tags:      StringList(in.Tags).Clone(),
		Images:    StringList(in.Images).Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntryPatch describes a partial update. Nil fields are left unchanged.
type EntryPatch struct {
	Date     *string
	Time     *string
	Mood     *Mood
	Title    *string
	Content  *string
	Tags     *[]string
	Location *string
	Images   *[]string
}

// Empty reports whether the patch touches no field.
func (p EntryPatch) Empty() bool {
	return p.Date == nil && p.Time == nil && p.Mood == nil && p.Title == nil &&
		p.Content == nil && p.Tags == nil && p.Location == nil && p.Images == nil
}

// Validate checks only the fields present in the patch.
func (p EntryPatch) Validate() error {
	if p.Date != nil {
		if err := validateDate(*p.Date); err != nil {
			return err
		}
	}
	if p.Time != nil {
		if err := validateClock("time", *p.Time); err != nil {
			return err
		}
	}
	if p.Mood != nil && !p.Mood.Valid() {
		return fmt.Errorf("%w: unknown mood %q", common.ErrorValidation, *p.Mood)
	}
	if p.Title != nil {
		return validateTitle(*p.Title)
	}
	return nil
}

// Apply copies the present fields onto e. UpdatedAt is left to the caller.
func (p EntryPatch) Apply(e *Entry) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Mood != nil {
		e.Mood = *p.Mood
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Tags != nil {
		e.Tags = StringList(*p.Tags).Clone()
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Images != nil {
		e.Images = StringList(*p.Images).Clone()
	}
}

// MatchesQuery reports whether query occurs, ignoring case, in the title,
// content or location of e. An empty query matches every entry.
func (e Entry) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Content), q) ||
		strings.Contains(strings.ToLower(e.Location), q)
}

// SortEntries orders entries most recent first: date descending, then time
// descending, then id descending so equal timestamps keep a stable order.
func SortEntries(list []Entry) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.Time != b.Time {
			return a.Time > b.Time
		}
		return a.ID > b.ID
	})
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}
	return nil
}

func validateDate(date string) error {
	if !timex.IsDate(date) {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", common.ErrorValidation, date)
	}
	return nil
}

func validateClock(field, value string) error {
	if !timex.IsClock(value) {
		return fmt.Errorf("%w: %s %q must be HH:MM", common.ErrorValidation, field, value)
	}
	return nil
}
