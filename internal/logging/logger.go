// Package logging defines the structured-logging interface used across the
// journal and its log/slog implementation.
package logging

import "context"

// Logger is a leveled, context-aware logger. Arguments after msg are
// alternating keys and values:
//
//	log.Warn(ctx, "ignoring unreadable stored reminders", "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
