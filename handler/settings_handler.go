package handler

import (
	"errors"
	"log"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	Users    *usecase.UserService
	Activity ActivityRecorder
}

func (h *SettingsHandler) GetProfile(c *gin.Context) {
	user, err := h.Users.GetProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		log.Printf("profile fetch failed: %v", err)
		utils.InternalError(c, "Failed to fetch profile")
		return
	}

	utils.Success(c, user)
}

func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid profile data")
		return
	}
	if req.Name == "" && req.Email == "" {
		utils.BadRequest(c, "Nothing to update")
		return
	}

	user, err := h.Users.UpdateProfile(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		if err.Error() == "email already registered" {
			utils.Conflict(c, "Email already registered")
			return
		}
		log.Printf("profile update failed: %v", err)
		utils.InternalError(c, "Failed to update profile")
		return
	}

	utils.Success(c, user)
}

// ChangePassword verifies the current password before accepting the new one.
func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Old and new passwords are required")
		return
	}

	err := h.Users.ChangePassword(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWrongPassword):
			utils.BadRequest(c, "Current password is incorrect")
		case errors.Is(err, usecase.ErrNotFound):
			utils.NotFound(c, "User not found")
		default:
			log.Printf("password change failed: %v", err)
			utils.InternalError(c, "Failed to change password")
		}
		return
	}

	utils.Message(c, "Password changed successfully")
}

// Deactivate marks the caller's account inactive. Outstanding tokens stop
// working at the auth gate on their next request.
func (h *SettingsHandler) Deactivate(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.Users.Deactivate(c.Request.Context(), userID); err != nil {
		log.Printf("deactivation failed: %v", err)
		utils.InternalError(c, "Failed to deactivate account")
		return
	}

	utils.Message(c, "Account deactivated")
}
