package dto

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,min=1"`
	Email string `json:"email" binding:"omitempty,email"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
