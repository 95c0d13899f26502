package cli

import (
	"context"
	"strings"

	"github.com/qup1010/moodlistener/internal/models"
)

// Tags prints the catalog, optionally restricted to one mood.
func (a *App) Tags(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return a.fail(ctx, "tags", usage("usage: tags [mood]"))
	}

	if len(args) == 1 {
		m, err := parseMoodArg(args[0])
		if err != nil {
			return a.fail(ctx, "tags", err)
		}
		list, err := a.repos.Tags().ListByMood(ctx, m)
		if err != nil {
			return a.fail(ctx, "tags", err)
		}
		a.renderTags([]models.Mood{m}, func(models.Mood) []models.Tag { return list })
		return nil
	}

	all, err := a.repos.Tags().ListAll(ctx)
	if err != nil {
		return a.fail(ctx, "tags", err)
	}
	a.renderTags(models.Moods(), all.For)
	return nil
}

// AddTag creates a user tag from "addtag <mood> <name>", prompting for
// whatever is missing. A name already present for the mood is reported but
// still added.
func (a *App) AddTag(ctx context.Context, args []string) error {
	var in models.TagInput
	var err error

	moodArg := optional(args, 0)
	if moodArg == "" {
		if moodArg, err = GetSimpleText(a.reader, "Mood (positive/neutral/negative)", a.out); err != nil {
			return a.fail(ctx, "addtag", err)
		}
	}
	if in.MoodType, err = parseMoodArg(moodArg); err != nil {
		return a.fail(ctx, "addtag", err)
	}

	if len(args) > 1 {
		in.Name = strings.Join(args[1:], " ")
	} else if in.Name, err = GetSimpleText(a.reader, "Tag name", a.out); err != nil {
		return a.fail(ctx, "addtag", err)
	}

	existing, err := a.repos.Tags().ListByMood(ctx, in.MoodType)
	if err != nil {
		return a.fail(ctx, "addtag", err)
	}
	for _, t := range existing {
		if strings.EqualFold(t.Name, strings.TrimSpace(in.Name)) {
			a.printf("Note: %s already has a tag named %q (#%d)\n", in.MoodType, t.Name, t.ID)
			break
		}
	}

	t, err := a.repos.Tags().Create(ctx, in)
	if err != nil {
		return a.fail(ctx, "addtag", err)
	}
	a.printf("Added tag #%d %q\n", t.ID, t.Name)
	return nil
}

func (a *App) DeleteTag(ctx context.Context, args []string) error {
	id, err := parseID(args, "deltag")
	if err != nil {
		return a.fail(ctx, "deltag", err)
	}
	t, err := a.repos.Tags().GetByID(ctx, id)
	if err != nil {
		return a.fail(ctx, "deltag", err)
	}
	if err := a.repos.Tags().DeleteByID(ctx, id); err != nil {
		return a.fail(ctx, "deltag", err)
	}
	a.printf("Deleted tag #%d %q; entries keep the name\n", t.ID, t.Name)
	return nil
}
