package widgetstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/hupe1980/widgetstore/model"
)

// Logger wraps slog.Logger with widgetstore-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithID adds a widget id field to the logger.
func (l *Logger) WithID(id uuid.UUID) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// logOutcome logs a failed operation. Invalid arguments are caller mistakes
// and go to warn; misses are routine and go to debug.
func (l *Logger) logOutcome(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	switch {
	case errors.Is(err, ErrInvalidArgument):
		l.WarnContext(ctx, msg, args...)
	case errors.Is(err, ErrNotFound):
		l.DebugContext(ctx, msg, args...)
	default:
		l.ErrorContext(ctx, msg, args...)
	}
}

// LogCreate logs a create operation.
func (l *Logger) LogCreate(ctx context.Context, w model.Widget, err error) {
	if err != nil {
		l.logOutcome(ctx, "create failed", err)
		return
	}
	l.DebugContext(ctx, "create completed",
		"id", w.ID,
		"z", w.Z,
	)
}

// LogUpdate logs an update operation.
func (l *Logger) LogUpdate(ctx context.Context, id uuid.UUID, err error) {
	if err != nil {
		l.logOutcome(ctx, "update failed", err, "id", id)
		return
	}
	l.DebugContext(ctx, "update completed",
		"id", id,
	)
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, id uuid.UUID, err error) {
	if err != nil {
		l.logOutcome(ctx, "delete failed", err, "id", id)
		return
	}
	l.DebugContext(ctx, "delete completed",
		"id", id,
	)
}

// LogList logs a collection read.
func (l *Logger) LogList(ctx context.Context, q model.Query, results int, err error) {
	query := "default"
	if q != nil {
		query = fmt.Sprint(q)
	}
	if err != nil {
		l.logOutcome(ctx, "list failed", err, "query", query)
		return
	}
	l.DebugContext(ctx, "list completed",
		"query", query,
		"results", results,
	)
}
