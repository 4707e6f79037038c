// Package xcontext holds request-scoped values set by HTTP middleware.
package xcontext

import "context"

type key uint8

const (
	requestIDKey key = iota
	userIDKey
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	return get(ctx, requestIDKey)
}

// SetUserID records the authenticated user. Only auth middleware should call it.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func GetUserID(ctx context.Context) (string, bool) {
	return get(ctx, userIDKey)
}

// get treats an empty string the same as an absent value.
func get(ctx context.Context, k key) (string, bool) {
	v, ok := ctx.Value(k).(string)
	return v, ok && v != ""
}
