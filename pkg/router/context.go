package router

import (
	"context"

	"github.com/okian/arith/pkg/logger"
)

type requestIDKey struct{}

// WithRequestID stores the request ID on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored on ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Settings is the read side of the process settings.
type Settings interface {
	Lookup(key string) (string, bool)
}

// TraceSetting logs the value of key at debug level. The lookup is skipped
// entirely when debug logging is off.
func TraceSetting(ctx context.Context, log logger.Logger, settings Settings, key string) {
	if log == nil || settings == nil || !log.Enabled(ctx, logger.LevelDebug) {
		return
	}
	var value any
	if v, ok := settings.Lookup(key); ok {
		value = v
	}
	log.Debug(ctx, "diagnostic setting",
		logger.String("key", key),
		logger.Any("value", value),
		logger.String("request_id", RequestID(ctx)))
}
