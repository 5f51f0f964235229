package handler

import (
	"context"
	"log"

	"main/dto"
	"main/model"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// AuthUserStore is the slice of the user repository the auth surface needs.
type AuthUserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
}

type AuthHandler struct {
	Tokens   *services.TokenService
	Users    AuthUserStore
	Activity ActivityRecorder
}

// Login checks email/password and issues a session token. Bad credentials and
// deactivated accounts both come back as 400 with a message that does not
// reveal which part failed.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Email and password are required")
		return
	}

	user, err := h.Users.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("login lookup failed: %v", err)
		utils.InternalError(c, "Login failed")
		return
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.BadRequest(c, "Invalid credentials")
		return
	}

	ok, err := services.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		utils.TrackAuthAttempt("failure", "login")
		utils.BadRequest(c, "Invalid credentials")
		return
	}

	if !user.IsActive {
		utils.TrackAuthAttempt("failure", "login")
		utils.BadRequest(c, "Account is deactivated")
		return
	}

	token, err := h.Tokens.Issue(user.UserID)
	if err != nil {
		log.Printf("token issue failed: %v", err)
		utils.InternalError(c, "Login failed")
		return
	}

	if err := h.Users.UpdateLastLogin(c.Request.Context(), user.UserID); err != nil {
		// Not fatal; the login already succeeded.
		log.Printf("failed to update last login: %v", err)
	}

	recordActivity(c, h.Activity, user.UserID, model.ActionLogin, user.UserID, "User", nil)
	utils.TrackAuthAttempt("success", "login")

	utils.Success(c, dto.LoginResponse{
		Token: token,
		User:  dto.ToUserInfo(user),
	})
}

// Verify confirms the token is still good and returns the caller's identity.
// All the work happens in AuthMiddleware; by the time this runs the user is
// already attached to the context.
func (h *AuthHandler) Verify(c *gin.Context) {
	value, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	user := value.(model.User)

	utils.Success(c, gin.H{"valid": true, "user": dto.ToUserInfo(&user)})
}

// Logout records the event. Tokens are stateless, so there is nothing to
// revoke server-side; the client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	recordActivity(c, h.Activity, userID, model.ActionLogout, userID, "User", nil)
	utils.Message(c, "Logged out successfully")
}
