package timex

import "time"

const (
	// DateLayout is the calendar date format of an entry ("YYYY-MM-DD").
	// Dates in this format sort correctly as plain strings.
	DateLayout = "2006-01-02"

	// ClockLayout is the 24-hour wall-clock format of an entry or reminder ("HH:MM").
	ClockLayout = "15:04"

	// StampLayout is a fixed-width RFC 3339 layout used to persist
	// created/updated timestamps as sortable text.
	StampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// FormatDate returns the calendar date of t in DateLayout, using t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a DateLayout string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsDate reports whether s is a valid DateLayout date.
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil && len(s) == len(DateLayout)
}

// IsClock reports whether s is a valid ClockLayout time.
func IsClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil && len(s) == len(ClockLayout)
}

// AddDays shifts a DateLayout date by n calendar days. Calendar arithmetic
// is done in UTC so daylight-saving transitions never skip or repeat a day.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// FormatStamp renders t in UTC using StampLayout.
func FormatStamp(t time.Time) string {
	return t.UTC().Format(StampLayout)
}

// ParseStamp parses a timestamp written by FormatStamp. Plain RFC 3339
// values are accepted as well.
func ParseStamp(s string) (time.Time, error) {
	t, err := time.Parse(StampLayout, s)
	if err == nil {
		return t.UTC(), nil
	}
	t, err = time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// NextStamp returns now in UTC, nudged forward when it does not come strictly
// after prev. Clocks with coarse resolution would otherwise let two writes in
// quick succession share an updated_at value.
func NextStamp(now, prev time.Time) time.Time {
	now = now.UTC().Round(0)
	if !now.After(prev) {
		return prev.Add(time.Nanosecond).UTC()
	}
	return now
}
