package attr

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// String returns a string slog attribute.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int returns an int slog attribute.
func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

// Int64 returns an int64 slog attribute.
func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

// Bool returns a bool slog attribute.
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// Any returns an untyped slog attribute.
func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Error returns the conventional error attribute.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// MatchID returns a match identifier attribute.
func MatchID(key string, id sharedtypes.MatchID) slog.Attr {
	return slog.String(key, id.String())
}

// EventID returns a score-event identifier attribute.
func EventID(key string, id sharedtypes.EventID) slog.Attr {
	return slog.String(key, id.String())
}

// PlayerID returns a player identifier attribute.
func PlayerID(key string, id sharedtypes.PlayerID) slog.Attr {
	return slog.String(key, string(id))
}

// RoomID returns a room identifier attribute.
func RoomID(key string, id sharedtypes.RoomID) slog.Attr {
	return slog.String(key, string(id))
}

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context for later log
// extraction.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// ExtractCorrelationID returns the correlation_id attribute from the context,
// or an empty attribute when none is set.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if v, ok := ctx.Value(correlationIDKey{}).(string); ok && v != "" {
		return slog.String("correlation_id", v)
	}
	return slog.String("correlation_id", "")
}

// CorrelationIDFromMsg returns the correlation_id attribute from a watermill
// message's metadata.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", middleware.MessageCorrelationID(msg))
}
