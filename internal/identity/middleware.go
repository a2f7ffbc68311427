package identity

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireSession validates the Clerk session token and stores the user id in
// the request context. Requests without a valid session get 401.
func RequireSession(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		userID, err := v.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// OptionalSession resolves the user id when a valid session is present but
// lets anonymous requests through.
func OptionalSession(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if userID, err := v.Verify(token); err == nil {
				c.Set(ctxUserID, userID)
			}
		}
		c.Next()
	}
}

// extractToken pulls the session token from the Authorization header or the
// __session cookie Clerk sets for same-origin requests.
func extractToken(c *gin.Context) string {
	bearer := c.GetHeader("Authorization")
	if strings.HasPrefix(bearer, "Bearer ") {
		return strings.TrimSpace(bearer[7:])
	}
	if cookie, err := c.Cookie("__session"); err == nil {
		return cookie
	}
	return ""
}
