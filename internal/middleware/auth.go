package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/finzen-app/finzen_backend/internal/core/domain"
	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// loginPath is the unauthenticated entry point requests are sent back to.
const loginPath = "/login"

// sessionToken pulls the raw session token off a request: the session cookie
// first, then an Authorization Bearer header for non-browser clients. Both
// carry the same signed token; there is no second session mechanism.
func sessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// RequireSession resolves the caller's session and attaches the identity to
// the request context. Requests without a valid session are redirected to the
// login entry point.
func RequireSession(gateway portssvc.IdentityGatewaySvcFacade, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		identity, err := gateway.ResolveSession(sessionToken(c, cookieName))
		if err != nil {
			logger.Warn("Session resolution failed", slog.String("error", err.Error()))
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		ctx := withIdentity(c.Request.Context(), *identity)
		enrichedLogger := logger.With(slog.String("user_id", identity.UserID))
		ctx = withLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole gates a route group on the resolved role. Admin-only groups
// accept only admin; user-level groups accept user and admin (admin is a
// superset role). A mismatch is an explicit denial, never a redirect or a
// silent downgrade. The check consults only the signed session payload.
func RequireRole(expected domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		if !ok {
			// RequireSession must run first; a missing identity is a wiring
			// bug, treated as a denial rather than a panic.
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		allowed := identity.Role == expected ||
			(expected == domain.RoleUser && identity.Role == domain.RoleAdmin)
		if !allowed {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role check failed",
				slog.String("required_role", string(expected)),
				slog.String("session_role", string(identity.Role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		c.Next()
	}
}
