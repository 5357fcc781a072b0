package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cmomatt/referralpro/models"

	"github.com/gin-gonic/gin"
)

// SessionStore looks up login sessions by token
type SessionStore interface {
	GetByToken(ctx context.Context, token string) (*models.Session, error)
}

// userIDKey is the gin context key under which the session's user id is stored
const userIDKey = "session_user_id"

// RequireSession returns a gin middleware that rejects requests without a
// valid bearer session token. Possession of an unexpired session is the only
// check; there are no per-resource authorization rules.
func RequireSession(sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Missing or malformed Authorization header",
			})
			return
		}

		session, err := sessions.GetByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired session",
			})
			return
		}

		c.Set(userIDKey, session.UserID)
		c.Next()
	}
}

// SessionUserID returns the user id attached by RequireSession, or ""
func SessionUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
