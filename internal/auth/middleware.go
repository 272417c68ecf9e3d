package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
)

// SessionContext returns a Gin middleware that copies session identity into
// the Gin context so controllers and templates can read it uniformly.
func SessionContext(sm *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := sm.GetUserID(c.Request); userID != 0 {
			c.Set(ContextKeyUserID, userID)
			c.Set(ContextKeyUsername, sm.GetUsername(c.Request))
		}
		c.Next()
	}
}

// RequireAuth returns a Gin middleware that rejects unauthenticated
// requests. Browser requests are redirected to the login page.
func RequireAuth(sm *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sm.IsAuthenticated(c.Request) {
			c.Next()
			return
		}

		if isAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns 0 when no user is authenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUsername extracts the authenticated user's name from the Gin context.
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		if username, ok := name.(string); ok {
			return username
		}
	}
	return ""
}

func isAPIRequest(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return accept == "application/json" ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
