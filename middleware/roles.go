package middleware

import (
	"main/model"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects callers whose role is outside the allow-list. Role
// comparison is canonical, so stored variants like "team lead" still match.
// Must run after AuthMiddleware.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if !user.Role.In(roles...) {
			utils.TrackError("auth", "role_denied")
			utils.Forbidden(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
