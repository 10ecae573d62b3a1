package logger

import (
	"context"
	"log/slog"
	"os"
)

// context key for the request-scoped logger
type ctxKey struct{}

var base = newBase()

// production gets JSON on stdout for log shippers; everything else gets
// readable text on stderr with debug enabled
func newBase() *slog.Logger {
	if os.Getenv("ENVIRONMENT") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// returns a logger carrying additional fields
func With(args ...any) *slog.Logger {
	return base.With(args...)
}

// returns the request-scoped logger when one was attached, the base logger
// otherwise
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return base
	}

	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}

	return base
}

// attaches a logger to the context
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// logs an info message
func Info(msg string, args ...any) {
	base.Info(msg, args...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	base.Warn(msg, args...)
}

// logs an error message
func Error(msg string, args ...any) {
	base.Error(msg, args...)
}

// logs an error message with the error appended as a field
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	base.Error(msg, args...)
}

// logs an error and exits, for entrypoints that cannot continue
func Fatal(msg string, args ...any) {
	base.Error(msg, args...)
	os.Exit(1)
}
