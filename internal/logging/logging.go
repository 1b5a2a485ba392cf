// Package logging threads the configured slog.Logger through contexts, so the
// generator binary and the availability service share one logger without
// plumbing it through every call site.
package logging

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// ContextWithLogger attaches logger to a derived context. A nil context or
// nil logger returns ctx unchanged.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger placed by ContextWithLogger, or nil when the
// context carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(contextKey{}).(*slog.Logger)
	return logger
}
