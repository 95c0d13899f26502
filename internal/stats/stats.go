package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/qup1010/moodlistener/internal/models"
	"github.com/qup1010/moodlistener/internal/repositories/entries"
	"github.com/qup1010/moodlistener/internal/timex"
)

// Trend windows offered by the stats screen.
const (
	WindowWeek    = 7
	WindowMonth   = 30
	WindowQuarter = 90

	DefaultWindow = WindowWeek
)

// Engine computes Stats from an entries.Repository.
type Engine struct {
	entries entries.Repository
	now     func() time.Time
	loc     *time.Location
}

func NewEngine(repo entries.Repository) *Engine {
	return &Engine{entries: repo, now: time.Now, loc: time.Local}
}

// WithClock replaces the time source that decides what "today" is.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// WithLocation sets the time zone in which calendar days are counted.
func (e *Engine) WithLocation(loc *time.Location) *Engine {
	e.loc = loc
	return e
}

// Compute returns statistics over all entries with a trend of windowDays
// days ending today. It fails only when the entries cannot be read.
func (e *Engine) Compute(ctx context.Context, windowDays int) (*models.Stats, error) {
	all, err := e.entries.List(ctx, models.EntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	if windowDays < 1 {
		windowDays = DefaultWindow
	}
	today := e.now().In(e.loc)

	return &models.Stats{
		TotalEntries: len(all),
		StreakDays:   Streak(Dates(all), today),
		Distribution: Distribution(all),
		Trend:        Trend(all, today, windowDays),
		Window:       windowDays,
	}, nil
}

// Distribution counts entries per mood. Each percentage is rounded half up
// on its own, so together they may miss 100 by a point or two.
func Distribution(list []models.Entry) models.MoodDistribution {
	var d models.MoodDistribution
	for _, e := range list {
		switch e.Mood {
		case models.MoodPositive:
			d.Positive++
		case models.MoodNeutral:
			d.Neutral++
		case models.MoodNegative:
			d.Negative++
		}
	}

	total := len(list)
	d.PositivePercent = percent(d.Positive, total)
	d.NeutralPercent = percent(d.Neutral, total)
	d.NegativePercent = percent(d.Negative, total)
	return d
}

// percent is round(part*100/total) with halves rounded up, in integers.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return (part*200 + total) / (2 * total)
}

// Trend returns one point per calendar day for the windowDays days ending
// on today's date, oldest first. Each value is the number of entries dated
// that day; days without entries are present with 0.
func Trend(list []models.Entry, today time.Time, windowDays int) []models.TrendPoint {
	if windowDays < 1 {
		windowDays = DefaultWindow
	}

	counts := make(map[string]int, len(list))
	for _, e := range list {
		counts[e.Date]++
	}

	end := calendarDay(today)
	out := make([]models.TrendPoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := timex.FormatDate(end.AddDate(0, 0, -i))
		out = append(out, models.TrendPoint{Day: day, Value: counts[day]})
	}
	return out
}

// Streak returns the number of consecutive days, ending at the most recent
// date in dates, that each have an entry. The run only counts when its most
// recent date is today or yesterday; otherwise the streak is 0. A date after
// today is taken as the most recent one and therefore also yields 0.
func Streak(dates []string, today time.Time) int {
	distinct := distinctDesc(dates)
	if len(distinct) == 0 {
		return 0
	}

	end := calendarDay(today)
	todayStr := timex.FormatDate(end)
	yesterdayStr := timex.FormatDate(end.AddDate(0, 0, -1))
	if distinct[0] != todayStr && distinct[0] != yesterdayStr {
		return 0
	}

	streak := 1
	prev := distinct[0]
	for _, d := range distinct[1:] {
		want, err := timex.AddDays(prev, -1)
		if err != nil || d != want {
			break
		}
		streak++
		prev = d
	}
	return streak
}

// Dates extracts the entry dates of list, in order, duplicates included.
func Dates(list []models.Entry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Date
	}
	return out
}

// SampleStep is the spacing between points kept by Sample: every day for
// a week, every 2nd day for a month, every 3rd for a quarter and one point
// per 30 days of window otherwise.
func SampleStep(windowDays int) int {
	switch {
	case windowDays <= WindowWeek:
		return 1
	case windowDays == WindowMonth:
		return 2
	case windowDays == WindowQuarter:
		return 3
	}
	return max(1, (windowDays+29)/30)
}

// Sample thins series for display, keeping every SampleStep(windowDays)-th
// point from the oldest on. The last point (today) is always kept. The
// input is not modified.
func Sample(series []models.TrendPoint, windowDays int) []models.TrendPoint {
	step := SampleStep(windowDays)
	if step == 1 {
		return append([]models.TrendPoint(nil), series...)
	}

	out := make([]models.TrendPoint, 0, len(series)/step+1)
	for i, p := range series {
		if i%step == 0 || i == len(series)-1 {
			out = append(out, p)
		}
	}
	return out
}

// calendarDay maps t to midnight UTC of the same calendar date in t's
// location, so AddDate steps whole days.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func distinctDesc(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
