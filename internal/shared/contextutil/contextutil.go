// Package contextutil carries request scoped values from the HTTP edge into
// services without tying them to gin.
package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	actorIDKey
	loggerKey
)

func lookup[T any](ctx context.Context, key ctxKey) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(key).(T)
	return v, ok
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	rid, _ := lookup[string](ctx, requestIDKey)
	return rid
}

// WithActorID stores the numeric id of the authenticated employee.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

func GetActorID(ctx context.Context) string {
	id, _ := lookup[string](ctx, actorIDKey)
	return id
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger prefers the request scoped logger, then fallback, then a no-op.
func GetLogger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := lookup[*zap.Logger](ctx, loggerKey); ok && l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}
