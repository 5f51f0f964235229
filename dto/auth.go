package dto

import "main/model"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UserInfo struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

func ToUserInfo(u *model.User) UserInfo {
	return UserInfo{
		ID:    u.UserID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role.Normalize(),
	}
}
