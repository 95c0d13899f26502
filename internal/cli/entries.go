package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/qup1010/moodlistener/internal/models"
	"github.com/qup1010/moodlistener/internal/timex"
)

// Add prompts for a new entry. Date and time default to now.
func (a *App) Add(ctx context.Context, args []string) error {
	now := a.now()
	var in models.EntryInput
	var err error

	if in.Date, err = GetWithDefault(a.reader, "Date (YYYY-MM-DD)", timex.FormatDate(now), a.out); err != nil {
		return a.fail(ctx, "add", err)
	}
	if in.Time, err = GetWithDefault(a.reader, "Time (HH:MM)", now.Format(timex.ClockLayout), a.out); err != nil {
		return a.fail(ctx, "add", err)
	}

	mood, err := GetSimpleText(a.reader, "Mood (positive/neutral/negative)", a.out)
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	if in.Mood, err = parseMoodArg(mood); err != nil {
		return a.fail(ctx, "add", err)
	}

	if in.Title, err = GetSimpleText(a.reader, "Title", a.out); err != nil {
		return a.fail(ctx, "add", err)
	}
	if in.Content, err = GetMultiline(a.reader, "How was it?", a.out); err != nil {
		return a.fail(ctx, "add", err)
	}

	tags, err := GetSimpleText(a.reader, "Tags, comma separated ("+a.tagHint(ctx, in.Mood)+")", a.out)
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	in.Tags = splitList(tags)

	if in.Location, err = GetSimpleText(a.reader, "Location (optional)", a.out); err != nil {
		return a.fail(ctx, "add", err)
	}

	images, err := GetSimpleText(a.reader, "Images (comma separated refs, optional)", a.out)
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	in.Images = splitList(images)

	e, err := a.repos.Entries().Create(ctx, in)
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	a.printf("Saved entry #%d\n", e.ID)
	return nil
}

func (a *App) tagHint(ctx context.Context, m models.Mood) string {
	list, err := a.repos.Tags().ListByMood(ctx, m)
	if err != nil || len(list) == 0 {
		return "none yet"
	}
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

// List prints entries filtered by the positional arguments
// [mood] [from] [to] [limit] [offset]. "-" leaves a filter unset.
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) > 5 {
		return a.fail(ctx, "list", usage("usage: list [mood] [from] [to] [limit] [offset]"))
	}

	var f models.EntryFilter
	if s := optional(args, 0); s != "" && s != "all" {
		m, err := parseMoodArg(s)
		if err != nil {
			return a.fail(ctx, "list", err)
		}
		f.Mood = &m
	}
	f.StartDate = optional(args, 1)
	f.EndDate = optional(args, 2)
	for _, d := range []string{f.StartDate, f.EndDate} {
		if d != "" && !timex.IsDate(d) {
			return a.fail(ctx, "list", usage("list: %q is not a YYYY-MM-DD date", d))
		}
	}

	var err error
	if f.Limit, err = nonNegative(optional(args, 3)); err != nil {
		return a.fail(ctx, "list", err)
	}
	if f.Offset, err = nonNegative(optional(args, 4)); err != nil {
		return a.fail(ctx, "list", err)
	}

	list, err := a.repos.Entries().List(ctx, f)
	if err != nil {
		return a.fail(ctx, "list", err)
	}
	a.renderEntries(list)
	return nil
}

func nonNegative(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, usage("%q is not a non-negative number", s)
	}
	return n, nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show")
	if err != nil {
		return a.fail(ctx, "show", err)
	}
	e, err := a.repos.Entries().GetByID(ctx, id)
	if err != nil {
		return a.fail(ctx, "show", err)
	}
	a.renderEntry(e)
	return nil
}

// Day lists the entries of one calendar day; "today" and "yesterday" are
// accepted besides a date.
func (a *App) Day(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.fail(ctx, "day", usage("usage: day <YYYY-MM-DD|today|yesterday>"))
	}
	date := args[0]
	switch strings.ToLower(date) {
	case "today":
		date = a.today()
	case "yesterday":
		date = timex.FormatDate(a.now().AddDate(0, 0, -1))
	}
	if !timex.IsDate(date) {
		return a.fail(ctx, "day", usage("day: %q is not a YYYY-MM-DD date", args[0]))
	}

	list, err := a.repos.Entries().GetByDate(ctx, date)
	if err != nil {
		return a.fail(ctx, "day", err)
	}
	a.renderEntries(list)
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.fail(ctx, "search", usage("usage: search <text>"))
	}
	list, err := a.repos.Entries().Search(ctx, strings.Join(args, " "))
	if err != nil {
		return a.fail(ctx, "search", err)
	}
	a.renderEntries(list)
	return nil
}

// Edit prompts for every field with the current value as default. An empty
// answer keeps the field and "-" clears an optional one.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit")
	if err != nil {
		return a.fail(ctx, "edit", err)
	}
	e, err := a.repos.Entries().GetByID(ctx, id)
	if err != nil {
		return a.fail(ctx, "edit", err)
	}

	var p models.EntryPatch
	ask := func(prompt, current string) (string, bool, error) {
		s, err := GetWithDefault(a.reader, prompt, current, a.out)
		if err != nil {
			return "", false, err
		}
		if s == "-" {
			return "", true, nil
		}
		return s, s != current, nil
	}

	fields := []struct {
		prompt  string
		current string
		set     func(string) error
	}{
		{"Date", e.Date, func(s string) error { p.Date = &s; return nil }},
		{"Time", e.Time, func(s string) error { p.Time = &s; return nil }},
		{"Mood", string(e.Mood), func(s string) error {
			m, err := parseMoodArg(s)
			if err != nil {
				return err
			}
			p.Mood = &m
			return nil
		}},
		{"Title", e.Title, func(s string) error { p.Title = &s; return nil }},
		{"Content", e.Content, func(s string) error { p.Content = &s; return nil }},
		{"Tags", strings.Join(e.Tags, ", "), func(s string) error {
			tags := splitList(s)
			p.Tags = &tags
			return nil
		}},
		{"Location", e.Location, func(s string) error { p.Location = &s; return nil }},
		{"Images", strings.Join(e.Images, ", "), func(s string) error {
			images := splitList(s)
			p.Images = &images
			return nil
		}},
	}
	for _, f := range fields {
		s, changed, err := ask(f.prompt, f.current)
		if err != nil {
			return a.fail(ctx, "edit", err)
		}
		if !changed {
			continue
		}
		if err := f.set(s); err != nil {
			return a.fail(ctx, "edit", err)
		}
	}

	if p.Empty() {
		a.printf("Nothing changed\n")
		return nil
	}
	if _, err := a.repos.Entries().Update(ctx, id, p); err != nil {
		return a.fail(ctx, "edit", err)
	}
	a.printf("Updated entry #%d\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete")
	if err != nil {
		return a.fail(ctx, "delete", err)
	}
	if err := a.repos.Entries().DeleteByID(ctx, id); err != nil {
		return a.fail(ctx, "delete", err)
	}
	a.printf("Deleted entry #%d\n", id)
	return nil
}
