// Package attr holds slog attribute helpers shared by every module.
package attr

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const correlationIDKey ctxKey = "correlation_id"

// CorrelationIDKey is the attribute and metadata key used for correlation IDs.
const CorrelationIDKey = "correlation_id"

func String(key, value string) slog.Attr             { return slog.String(key, value) }
func Int(key string, value int) slog.Attr            { return slog.Int(key, value) }
func Int64(key string, value int64) slog.Attr        { return slog.Int64(key, value) }
func Bool(key string, value bool) slog.Attr          { return slog.Bool(key, value) }
func Time(key string, value time.Time) slog.Attr     { return slog.Time(key, value) }
func Any(key string, value any) slog.Attr            { return slog.Any(key, value) }
func Duration(key string, d time.Duration) slog.Attr { return slog.Duration(key, d) }

// RoundID logs a numeric round identifier.
func RoundID(key string, id int64) slog.Attr { return slog.Int64(key, id) }

// UserID logs a Discord member identifier.
func UserID(key, id string) slog.Attr { return slog.String(key, id) }

// Error logs err under the "error" key. A nil error is logged as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// WithCorrelationID stores a correlation ID in ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext returns the correlation ID stored in ctx, if any.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// ExtractCorrelationID returns the correlation ID in ctx as a log attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String(CorrelationIDKey, CorrelationIDFromContext(ctx))
}
