package middleware

import (
	"context"
	"errors"
	"strings"

	"main/model"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// UserFinder resolves the token subject to a stored user.
type UserFinder interface {
	FindUser(ctx context.Context, userID string) (*model.User, error)
}

// AuthMiddleware validates the bearer token and attaches the authenticated
// user to the request context under "user" (hash scrubbed) and its id under
// "user_id". Failure mapping: no token at all is 401, a token that fails
// validation (bad signature, garbage, expired) is 403, a token whose subject
// no longer resolves to an active account is 401.
func AuthMiddleware(tokens *services.TokenService, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.TrackAuthAttempt("failure", "token")
			utils.Unauthorized(c, "Access token required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := tokens.Validate(tokenString)
		if err != nil {
			utils.TrackAuthAttempt("failure", "token")
			if errors.Is(err, services.ErrTokenExpired) {
				utils.Forbidden(c, "Token expired")
			} else {
				utils.Forbidden(c, "Invalid or expired token")
			}
			c.Abort()
			return
		}

		user, err := users.FindUser(c.Request.Context(), userID)
		if err != nil {
			utils.TrackError("auth", "user_lookup_failed")
			utils.InternalError(c, "Authentication failed")
			c.Abort()
			return
		}
		if user == nil {
			utils.TrackAuthAttempt("failure", "token")
			utils.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}
		if !user.IsActive {
			utils.TrackAuthAttempt("failure", "token")
			utils.Unauthorized(c, "Account is deactivated")
			c.Abort()
			return
		}

		utils.TrackAuthAttempt("success", "token")
		c.Set("user", user.Sanitized())
		c.Set("user_id", user.UserID)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the context. The boolean is
// false when AuthMiddleware did not run on this route.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(model.User)
	if !ok {
		return nil, false
	}
	return &user, true
}
