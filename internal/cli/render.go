package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/qup1010/moodlistener/internal/models"
)

const defaultWidth = 80

// Test seams for terminal detection.
var (
	isTerminal = term.IsTerminal
	getSize    = term.GetSize
)

// terminalWidth returns the column count of out when it is a terminal and
// defaultWidth otherwise.
func terminalWidth(out io.Writer) int {
	f, ok := out.(interface{ Fd() uintptr })
	if !ok || !isTerminal(int(f.Fd())) {
		return defaultWidth
	}
	if w, _, err := getSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

func (a *App) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.SetStyle(table.StyleLight)
	return t
}

var moodMarks = map[models.Mood]string{
	models.MoodPositive: "+",
	models.MoodNeutral:  "=",
	models.MoodNegative: "-",
}

func moodLabel(m models.Mood) string {
	return moodMarks[m] + " " + string(m)
}

func (a *App) renderEntries(list []models.Entry) {
	if len(list) == 0 {
		a.printf("No entries\n")
		return
	}

	// id, date, time, mood and tags take roughly 60 columns with borders.
	titleWidth := max(a.width-60, 12)

	t := a.newTable()
	t.AppendHeader(table.Row{"ID", "Date", "Time", "Mood", "Title", "Tags"})
	for _, e := range list {
		t.AppendRow(table.Row{
			e.ID,
			e.Date,
			e.Time,
			moodLabel(e.Mood),
			runewidth.Truncate(e.Title, titleWidth, "…"),
			runewidth.Truncate(strings.Join(e.Tags, ", "), 20, "…"),
		})
	}
	t.Render()
}

func (a *App) renderEntry(e *models.Entry) {
	t := a.newTable()
	t.SetTitle("Entry #%d", e.ID)
	t.AppendRow(table.Row{"Date", e.Date + " " + e.Time})
	t.AppendRow(table.Row{"Mood", moodLabel(e.Mood)})
	t.AppendRow(table.Row{"Title", e.Title})
	if e.Content != "" {
		t.AppendRow(table.Row{"Content", e.Content})
	}
	if len(e.Tags) > 0 {
		t.AppendRow(table.Row{"Tags", strings.Join(e.Tags, ", ")})
	}
	if e.Location != "" {
		t.AppendRow(table.Row{"Location", e.Location})
	}
	if len(e.Images) > 0 {
		t.AppendRow(table.Row{"Images", strings.Join(e.Images, "\n")})
	}
	t.AppendRow(table.Row{"Updated", e.UpdatedAt.Local().Format("2006-01-02 15:04:05")})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: max(a.width-16, 20)}})
	t.Render()
}

func (a *App) renderTags(groups []models.Mood, byMood func(models.Mood) []models.Tag) {
	t := a.newTable()
	t.AppendHeader(table.Row{"ID", "Mood", "Name", "Default"})
	for _, m := range groups {
		for _, tag := range byMood(m) {
			def := ""
			if tag.IsDefault {
				def = "yes"
			}
			t.AppendRow(table.Row{tag.ID, moodLabel(m), tag.Name, def})
		}
	}
	t.Render()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

var weekdayShort = [...]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func formatDays(days []int) string {
	switch len(days) {
	case 0:
		return "never"
	case 7:
		return "daily"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 1 && d <= 7 {
			names = append(names, weekdayShort[d])
		}
	}
	return strings.Join(names, ",")
}

// bar draws value as a run of blocks scaled so that peak fills width.
func bar(value, peak, width int) string {
	if value <= 0 || peak <= 0 || width <= 0 {
		return ""
	}
	n := value * width / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func (a *App) renderStats(s *models.Stats) {
	t := a.newTable()
	t.SetTitle("Mood statistics")
	t.AppendHeader(table.Row{"Mood", "Entries", "Share"})
	for _, m := range models.Moods() {
		t.AppendRow(table.Row{moodLabel(m), s.Distribution.Count(m), fmt.Sprintf("%d%%", s.Distribution.Percent(m))})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"total", s.TotalEntries, ""})
	t.AppendRow(table.Row{"streak", fmt.Sprintf("%d days", s.StreakDays), ""})
	t.Render()
}

func (a *App) renderTrend(points []models.TrendPoint, window int) {
	peak := 0
	for _, p := range points {
		peak = max(peak, p.Value)
	}

	t := a.newTable()
	t.SetTitle("Entries per day, last %d days", window)
	t.AppendHeader(table.Row{"Day", "Count", ""})
	barWidth := max(a.width-30, 10)
	for _, p := range points {
		t.AppendRow(table.Row{p.Day, p.Value, bar(p.Value, peak, barWidth)})
	}
	t.Render()
}
