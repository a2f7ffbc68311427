package identity

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const ctxUserID = "clerk_user_id"

// CurrentUserID extracts the authenticated user's id from the Gin context.
// Empty when the request carries no valid session.
func CurrentUserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(ctxUserID))
}

// SetUserID stores the user id on the request context. Handler tests use it
// in place of the session middleware.
func SetUserID(c *gin.Context, userID string) {
	c.Set(ctxUserID, userID)
}
