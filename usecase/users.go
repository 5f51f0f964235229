package usecase

import (
	"context"
	"errors"

	"main/dto"
	"main/model"
	"main/services"
)

// ErrWrongPassword means the supplied current password did not match.
var ErrWrongPassword = errors.New("incorrect password")

// UserStore is the slice of the user repository the service uses.
type UserStore interface {
	FindUser(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID, name, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, hashedPassword string) error
	Deactivate(ctx context.Context, userID string) error
}

type UserService struct {
	Users UserStore
}

func (svc *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := svc.Users.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (svc *UserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*model.User, error) {
	user, err := svc.Users.UpdateProfile(ctx, userID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (svc *UserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := svc.Users.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	ok, err := services.VerifyPassword(user.Password, req.OldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWrongPassword
	}

	hash, err := services.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return svc.Users.UpdatePassword(ctx, userID, hash)
}

// Deactivate marks the caller's own account inactive. Existing tokens stop
// working at the auth gate; the account is never deleted.
func (svc *UserService) Deactivate(ctx context.Context, userID string) error {
	return svc.Users.Deactivate(ctx, userID)
}
