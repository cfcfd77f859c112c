package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithIdentity adds a resolved identity to the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext retrieves the resolved identity from the context.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// IDFromContext retrieves the canonical tenant id from the context.
// Returns false for missing or non-canonical identities.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := FromContext(ctx)
	if !ok || !id.Canonical() {
		return uuid.UUID{}, false
	}
	return id.UUID(), true
}

// MustFromContext retrieves the identity or panics. Only for handlers that
// sit behind RequireTenant.
func MustFromContext(ctx context.Context) Identity {
	id, ok := FromContext(ctx)
	if !ok || id.IsZero() {
		panic("tenant: no tenant in context")
	}
	return id
}

// LoggerExtractor returns a logger context extractor that adds the resolved
// tenant id to every log record carrying one.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := FromContext(ctx); ok && !id.IsZero() {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
