package cli

import (
	"context"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/qup1010/moodlistener/internal/models"
	"github.com/qup1010/moodlistener/internal/timex"
)

func (a *App) Settings(ctx context.Context, args []string) error {
	s, err := a.repos.Settings().GetSettings(ctx)
	if err != nil {
		return a.fail(ctx, "settings", err)
	}

	t := a.newTable()
	t.SetTitle("Settings")
	t.AppendRow(table.Row{"Notifications", onOff(s.NotificationEnabled)})
	t.AppendRow(table.Row{"Theme", s.ThemeID})
	t.AppendRow(table.Row{"Dark mode", onOff(s.DarkMode)})
	t.Render()

	if len(s.Reminders) == 0 {
		a.printf("No reminders\n")
		return nil
	}
	rt := a.newTable()
	rt.AppendHeader(table.Row{"Reminder", "Time", "Days", "Enabled"})
	for _, r := range s.Reminders {
		rt.AppendRow(table.Row{shortID(r.ID), r.Time, formatDays(r.Days), onOff(r.Enabled)})
	}
	rt.Render()
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.fail(ctx, "theme", usage("usage: theme <id>"))
	}
	id := args[0]
	s, err := a.repos.Settings().UpdateSettings(ctx, models.SettingsPatch{ThemeID: &id})
	if err != nil {
		return a.fail(ctx, "theme", err)
	}
	a.printf("Theme set to %s\n", s.ThemeID)
	return nil
}

func (a *App) Dark(ctx context.Context, args []string) error {
	on, err := parseOnOff(args, "dark")
	if err != nil {
		return a.fail(ctx, "dark", err)
	}
	s, err := a.repos.Settings().UpdateSettings(ctx, models.SettingsPatch{DarkMode: &on})
	if err != nil {
		return a.fail(ctx, "dark", err)
	}
	a.printf("Dark mode %s\n", onOff(s.DarkMode))
	return nil
}

// Remind appends a reminder at HH:MM on the given days (daily by default)
// and turns notifications on. "remind off" and "remind on" only toggle
// notifications.
func (a *App) Remind(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return a.fail(ctx, "remind", usage("usage: remind <HH:MM> [daily|weekdays|weekends|1,3,5] | remind on|off"))
	}

	if on, err := parseOnOff(args[:1], "remind"); err == nil {
		if _, err := a.repos.Settings().UpdateSettings(ctx, models.SettingsPatch{NotificationEnabled: &on}); err != nil {
			return a.fail(ctx, "remind", err)
		}
		a.printf("Notifications %s\n", onOff(on))
		return nil
	}

	at := args[0]
	if !timex.IsClock(at) {
		return a.fail(ctx, "remind", usage("remind: %q is not HH:MM", at))
	}
	days, err := parseDays(strings.Join(args[1:], ""))
	if err != nil {
		return a.fail(ctx, "remind", err)
	}

	current, err := a.repos.Settings().GetSettings(ctx)
	if err != nil {
		return a.fail(ctx, "remind", err)
	}
	reminders := append(append([]models.Reminder(nil), current.Reminders...),
		models.Reminder{Time: at, Enabled: true, Days: days})
	enabled := true

	s, err := a.repos.Settings().UpdateSettings(ctx, models.SettingsPatch{
		NotificationEnabled: &enabled,
		Reminders:           &reminders,
	})
	if err != nil {
		return a.fail(ctx, "remind", err)
	}
	a.printf("Reminder at %s, %s (%d total)\n", at, formatDays(days), len(s.Reminders))
	return nil
}

func (a *App) Profile(ctx context.Context, args []string) error {
	p, err := a.repos.Settings().GetProfile(ctx)
	if err != nil {
		return a.fail(ctx, "profile", err)
	}
	avatar := p.AvatarURL
	if avatar == "" {
		avatar = "(none)"
	}
	t := a.newTable()
	t.SetTitle("Profile")
	t.AppendRow(table.Row{"Name", p.Username})
	t.AppendRow(table.Row{"Avatar", avatar})
	t.Render()
	return nil
}

func (a *App) Rename(ctx context.Context, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return a.fail(ctx, "rename", usage("usage: rename <name>"))
	}
	p, err := a.repos.Settings().UpdateProfile(ctx, models.ProfilePatch{Username: &name})
	if err != nil {
		return a.fail(ctx, "rename", err)
	}
	a.printf("Hello, %s\n", p.Username)
	return nil
}

// Avatar stores an opaque avatar reference; "-" removes it.
func (a *App) Avatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.fail(ctx, "avatar", usage("usage: avatar <ref>|-"))
	}
	ref := args[0]
	if ref == "-" {
		ref = ""
	}
	p, err := a.repos.Settings().UpdateProfile(ctx, models.ProfilePatch{AvatarURL: &ref})
	if err != nil {
		return a.fail(ctx, "avatar", err)
	}
	if p.AvatarURL == "" {
		a.printf("Avatar removed\n")
		return nil
	}
	a.printf("Avatar set to %s\n", p.AvatarURL)
	return nil
}
