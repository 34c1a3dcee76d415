package ctxutil

import (
	"context"
)

type ctxKey string

const (
	roomIDKey    ctxKey = "room_id"
	requestIDKey ctxKey = "request_id"
)

// WithRoomID stores the room ID in the context.
func WithRoomID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, roomIDKey, id)
}

// RoomIDFromCtx extracts the room ID from the context.
// Returns "" and false if the value is missing, empty, or of the wrong type.
func RoomIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(roomIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
