package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rdxa101ou/bookvibe/internal/service"
)

// SessionCookie is the cookie holding the signed session token.
const SessionCookie = "bookvibe_session"

// Context keys set by SessionGuard for handlers to use.
const (
	CtxSessionID = "session_id"
	CtxUserID    = "user_id"
	CtxEmail     = "email"
	CtxRole      = "role"
	CtxDarkMode  = "dark_mode"
)

// SessionGuard protects a route group: it resolves the session cookie before
// the handler runs and redirects to /login when there is none. Every
// protected request re-checks the registry, nothing is cached.
func SessionGuard(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			redirectToLogin(c)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		sid, data, err := authService.CurrentSession(ctx, token)
		if err != nil {
			redirectToLogin(c)
			return
		}

		c.Set(CtxSessionID, sid)
		c.Set(CtxUserID, data.UserID)
		c.Set(CtxEmail, data.Email)
		c.Set(CtxRole, data.Role)
		c.Set(CtxDarkMode, data.DarkMode)

		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// RequireRole checks if the signed-in user has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(CtxRole)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "role not found in session"})
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok || role != requiredRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin is a convenience wrapper for requiring the admin role.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}
