// Package logging defines the structured logger used by the JotMe client.
// Implementations wrap log/slog; components accept the Logger interface so
// tests can pass Nop().
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "jot submitted", "jot_id", id, "endpoint", endpoint)
type Logger interface {
	// Debug logs request-level diagnostics (URLs, bodies sizes).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions, e.g. raw error bodies
	// returned by the backend.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
