package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"

	"github.com/google/uuid"
)

// ContextKey is the type of request-scoped context keys set by the API layer.
type ContextKey string

const (
	// UserNameContextKey holds the authenticated user name.
	UserNameContextKey ContextKey = "userName"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a generated trace ID.
	TraceIDLength = 16 // 32 hex characters

	// TokenCookieName is the cookie that carries the login token.
	TokenCookieName = "token"

	// TraceIDHeader echoes the trace ID back to the client.
	TraceIDHeader = "X-Trace-ID"
)

// randReader is swapped in tests.
var randReader io.Reader = rand.Reader

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, generateTraceID())
}

// WithTraceID adds the given trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context, or "" if none is set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithUserName adds the authenticated user name to the context.
func WithUserName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, UserNameContextKey, name)
}

// GetUserName returns the authenticated user name, if any.
func GetUserName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UserNameContextKey).(string)
	return name, ok && name != ""
}

// generateTraceID returns 32 hex characters. A failing random source falls
// back to a time-ordered UUID, which is unique but predictable.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := io.ReadFull(randReader, b); err != nil {
		if id, uerr := uuid.NewV7(); uerr == nil {
			return hex.EncodeToString(id[:])
		}
		return hex.EncodeToString(b)
	}
	return hex.EncodeToString(b)
}
