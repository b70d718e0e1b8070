package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"grouple/communityhub/internal/identity"
	"grouple/communityhub/internal/service"
	"grouple/communityhub/pkg/envelope"
)

const (
	ContextKeyUser    = "authenticated_user"
	ContextKeySession = "identity_session"
)

// SessionAuth verifies the bearer session token against the hosted identity
// provider and resolves the internal user row behind it. Everything past this
// middleware reads the caller from the context, never from the token.
func SessionAuth(provider identity.Provider, authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			envelope.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			envelope.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		session, err := provider.VerifySession(c.Request.Context(), parts[1])
		if err != nil {
			envelope.Unauthorized(c, "invalid or expired session")
			c.Abort()
			return
		}

		if session.TokenID != "" {
			revoked, err := authService.IsSessionRevoked(c.Request.Context(), session.TokenID)
			if err == nil && revoked {
				envelope.Unauthorized(c, "session has been logged out")
				c.Abort()
				return
			}
		}

		user, err := authService.Resolve(c.Request.Context(), session.ID, session.ImageURL)
		if err != nil {
			envelope.Unauthorized(c, "user not authenticated")
			c.Abort()
			return
		}

		c.Set(ContextKeySession, session)
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}
