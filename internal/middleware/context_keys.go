package middleware

import (
	"context"
	"log/slog"

	"github.com/finzen-app/finzen_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for request context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	identityCtxKey = contextKey("sessionIdentity")
)

// GetIdentityFromContext retrieves the resolved session identity from the
// request context. The boolean reports whether the middleware stored one.
func GetIdentityFromContext(c *gin.Context) (domain.SessionIdentity, bool) {
	val := c.Request.Context().Value(identityCtxKey)
	if val == nil {
		return domain.SessionIdentity{}, false
	}
	identity, ok := val.(domain.SessionIdentity)
	return identity, ok
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	identity, ok := GetIdentityFromContext(c)
	if !ok {
		return "", false
	}
	return identity.UserID, true
}

func withIdentity(ctx context.Context, identity domain.SessionIdentity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

func withLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}
