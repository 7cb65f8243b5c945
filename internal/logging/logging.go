// Package logging provides small helpers around log/slog so operations and
// errors are logged with a consistent shape across components.
package logging

import (
	"context"
	"io"
	"log/slog"
)

type contextKey struct{}

// WithLogger stores a logger in the context for downstream handlers.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext retrieves the logger stored by WithLogger, falling back to
// slog.Default when none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// LogHTTPRequest records a completed HTTP request with its latency.
func LogHTTPRequest(logger *slog.Logger, method, path string, status int, durationMs float64, attrs ...any) {
	args := make([]any, 0, len(attrs)+4)
	args = append(args,
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("duration_ms", durationMs))
	args = append(args, attrs...)
	logger.Info("http request", args...)
}

// LogOperation records a structured operation event.
func LogOperation(logger *slog.Logger, operation string, attrs ...any) {
	logger.Info(operation, attrs...)
}

// LogError records an error with a message and optional attributes.
func LogError(logger *slog.Logger, message string, err error, attrs ...any) {
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.Any("error", err))
	args = append(args, attrs...)
	logger.Error(message, args...)
}

// SafeCloseWithLogging closes c and logs a failure instead of dropping it.
// Meant for defer sites where the close error has nowhere else to go.
func SafeCloseWithLogging(c io.Closer, logger *slog.Logger, resource string) {
	if err := c.Close(); err != nil {
		logger.Warn("failed to close resource",
			slog.String("resource", resource),
			slog.Any("error", err))
	}
}
