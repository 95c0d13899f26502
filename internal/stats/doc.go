// Package stats derives journal statistics from the entry collection.
//
// Nothing is cached: Engine.Compute reads every entry through
// entries.Repository and recomputes the totals, the mood distribution, the
// daily activity trend and the current streak on each call. The helpers it
// uses are exported so callers can apply them to entry slices they already
// hold.
//
// # Streak
//
// A streak is a run of consecutive calendar days with at least one entry.
// It counts only while it is anchored at today or yesterday, so a day
// without an entry does not reset it until the following day also passes
// without one.
//
// # Calendar
//
// "Today" is the engine clock in the engine location (time.Local unless
// WithLocation says otherwise). Day arithmetic runs on YYYY-MM-DD strings
// in UTC, so daylight-saving changes never skip or repeat a day.
package stats
