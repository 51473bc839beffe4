package authz

import (
	"context"

	"github.com/google/uuid"
)

// AuthorizationContext describes one authorization request: who wants to do
// what to which resource from where. It is constructed at request entry,
// never mutated, and discarded after the pipeline completes.
type AuthorizationContext struct {
	Subject Subject
	// Resource is always literal, naming the concrete object being accessed.
	Resource Resource
	Action   Action
	SourceIP string
}

// NewAuthorizationContext builds the request value handed to the pipeline.
func NewAuthorizationContext(subject Subject, resource Resource, action Action, sourceIP string) AuthorizationContext {
	return AuthorizationContext{
		Subject:  subject,
		Resource: resource,
		Action:   action,
		SourceIP: sourceIP,
	}
}

// contextKey is a private type for context keys to prevent collisions.
type contextKey int

const requestIDKey contextKey = iota

// RequestIDFromContext retrieves the request ID used to correlate decision
// logs. Returns empty string if none is stored.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ContextWithRequestID returns a new context with the request ID attached.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// EnsureRequestID returns a context carrying a request ID, generating one if
// needed. Returns the (possibly new) context and the request ID.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := RequestIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.New().String()
	return ContextWithRequestID(ctx, id), id
}
