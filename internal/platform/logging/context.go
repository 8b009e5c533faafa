package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Attribute keys carried by request-scoped loggers.
const (
	KeyRequestID     = "request_id"
	KeyCorrelationID = "correlation_id"
	KeyTraceID       = "trace_id"
	KeyChatID        = "chat_id"
	KeyCommand       = "command"
)

type ctxKey struct{}

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(slog.Default())
}

// FromContext returns the request-scoped logger, or the default logger when
// ctx carries none.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOr(ctx, defaultLogger.Load())
}

// FromContextOr returns the request-scoped logger, or fallback when ctx
// carries none. Components with their own logger use it so that work outside
// a request still logs with the component's attributes.
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	return fallback
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithAttrs returns a context whose logger carries attrs.
func WithAttrs(ctx context.Context, attrs ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(attrs...))
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return WithAttrs(ctx, slog.String(KeyRequestID, id))
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return WithAttrs(ctx, slog.String(KeyCorrelationID, id))
}

func WithTraceID(ctx context.Context, id string) context.Context {
	return WithAttrs(ctx, slog.String(KeyTraceID, id))
}

// WithChatID tags the logger with the Telegram chat an update came from.
func WithChatID(ctx context.Context, chatID int64) context.Context {
	return WithAttrs(ctx, slog.Int64(KeyChatID, chatID))
}

// WithCommand tags the logger with the bot command being executed, so the
// reply sender's lines can be matched to it.
func WithCommand(ctx context.Context, command string) context.Context {
	return WithAttrs(ctx, slog.String(KeyCommand, command))
}

// SetDefault installs logger as the fallback for FromContext and as the
// slog package default.
func SetDefault(logger *slog.Logger) {
	defaultLogger.Store(logger)
	slog.SetDefault(logger)
}
