package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/hash"
	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/repo"
)

// UserService is the administrative provisioning surface: create staff
// accounts, toggle roles and the active flag, reset passwords. Users are
// never deleted, deactivation is the terminal state.
type UserService struct {
	Repo   *repo.GormRepo
	Hasher hash.Hasher
}

type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
}

type UpdateUserInput struct {
	Email    *string
	FullName *string
	Role     *string
	IsActive *bool
}

func (s *UserService) List(ctx context.Context, offset, limit int) (int64, []models.User, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.Repo.GetUserByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.create", "username", in.Username)

	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}
	if !models.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}

	if _, err := s.Repo.GetUserByUsername(ctx, in.Username); err == nil {
		return nil, fmt.Errorf("%w: username taken", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		l.Error("create_user_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: pwHash,
		FullName:     in.FullName,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		l.Error("create_user_failed", "error", err)
		return nil, err
	}

	l.Info("user_created", "user_id", user.ID, "role", user.Role)
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.update", "user_id", id)

	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Role != nil {
		if !models.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *in.Role)
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		l.Error("update_user_failed", "error", err)
		return nil, err
	}

	// Deactivation revokes every session; the lazy check in refresh would get
	// there eventually, this just closes the window sooner.
	if in.IsActive != nil && !*in.IsActive {
		if _, err := s.Repo.DeleteAllUserRefreshTokens(ctx, id); err != nil {
			l.Error("deactivate_revoke_failed", "error", err)
		}
	}

	l.Info("user_updated")
	return user, nil
}

// ResetPassword sets a new password without checking the old one (admin
// action) and revokes all of the user's sessions.
func (s *UserService) ResetPassword(ctx context.Context, id uint, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "users.reset_password", "user_id", id)

	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	pwHash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePasswordHash(ctx, id, pwHash); err != nil {
		return err
	}
	if _, err := s.Repo.DeleteAllUserRefreshTokens(ctx, id); err != nil {
		l.Error("reset_revoke_failed", "error", err)
		return err
	}

	l.Info("password_reset")
	return nil
}
