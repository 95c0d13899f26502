package cli

import (
	"context"
	"strconv"

	"github.com/qup1010/moodlistener/internal/stats"
)

// Stats prints the distribution, streak and a sampled trend for a window
// of 7, 30 or 90 days; the configured window is used when none is given.
func (a *App) Stats(ctx context.Context, args []string) error {
	window := a.config.TrendWindow
	if len(args) > 1 {
		return a.fail(ctx, "stats", usage("usage: stats [7|30|90]"))
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || (n != stats.WindowWeek && n != stats.WindowMonth && n != stats.WindowQuarter) {
			return a.fail(ctx, "stats", usage("stats: window must be 7, 30 or 90"))
		}
		window = n
	}

	s, err := a.engine.Compute(ctx, window)
	if err != nil {
		return a.fail(ctx, "stats", err)
	}

	a.renderStats(s)
	if s.TotalEntries == 0 {
		a.printf("No entries yet. Record one with 'add'.\n")
		return nil
	}
	a.renderTrend(stats.Sample(s.Trend, s.Window), s.Window)
	return nil
}
