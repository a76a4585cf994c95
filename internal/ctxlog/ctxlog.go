// Package ctxlog carries a slog.Logger through context.Context. Library
// packages that need to emit diagnostics (for example the dylib path
// computation, which warns when no libdir was detected) read the logger from
// the context instead of touching process-global state, so callers and tests
// can observe or silence those diagnostics by swapping the context.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys from
// other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context. If no logger was
// embedded it falls back to slog.Default, so diagnostic emission never
// panics deep inside an otherwise pure computation.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
