package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/events"
	"github.com/ibitrepair/workshop/internal/hash"
	"github.com/ibitrepair/workshop/internal/logging"
	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/repo"
	"github.com/ibitrepair/workshop/internal/tokens"
)

// AuthService owns the whole session lifecycle: credential checks, token
// issuance, refresh, revocation and password changes. Access tokens are
// stateless, refresh tokens live in the refresh_tokens table until revoked.
type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Manager
	Hasher hash.Hasher
	Events *events.Producer
}

// UserSummary is the public projection of a user record. The password hash
// never leaves the service layer.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func summarize(u *models.User) UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         UserSummary
}

type RefreshResult struct {
	AccessToken string
	User        UserSummary
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "user not found")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}

	if !user.IsActive {
		l.Warn("login_failed", "reason", "user inactive", "user_id", user.ID)
		return nil, ErrAccountDeactivated
	}

	if !s.Hasher.Check(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "invalid password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	accessToken, _, err := s.Tokens.SignAccess(user.ID, user.Username, user.Role)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign access token", "error", err)
		return nil, err
	}

	refreshToken, refreshExp, err := s.Tokens.SignRefresh(user.ID)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign refresh token", "error", err)
		return nil, err
	}

	if err := s.Repo.CreateRefreshToken(ctx, user.ID, refreshToken, refreshExp); err != nil {
		l.Error("login_failed", "reason", "cannot persist refresh token", "error", err)
		return nil, err
	}

	l.Info("login_successful", "user_id", user.ID, "role", user.Role)
	s.publish(ctx, user.ID, map[string]any{
		"type":     "user_logged_in",
		"userId":   user.ID,
		"username": user.Username,
	})

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         summarize(user),
	}, nil
}

// Refresh exchanges a stored refresh token for a fresh access token. The
// refresh token itself is not rotated; it stays valid until its own expiry or
// an explicit logout. Expired or orphaned rows are deleted on first rejected
// use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", ErrValidation)
	}

	// Any verification failure, a lapsed exp claim included, is reported as
	// plain invalid. Only the stored row's own expiry triggers cleanup.
	if _, err := s.Tokens.ParseRefresh(refreshToken); err != nil {
		l.Warn("refresh_failed", "reason", "token does not verify", "error", err)
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.Repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("refresh_failed", "reason", "token not in store")
			return nil, ErrInvalidRefreshToken
		}
		l.Error("refresh_failed", "error", err)
		return nil, err
	}

	if stored.ExpiresAt.Before(time.Now()) {
		if err := s.Repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
			l.Error("refresh_cleanup_failed", "error", err)
		}
		l.Warn("refresh_failed", "reason", "token expired", "user_id", stored.UserID)
		return nil, ErrRefreshTokenExpired
	}

	user, err := s.Repo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if derr := s.Repo.DeleteRefreshToken(ctx, refreshToken); derr != nil {
				l.Error("refresh_cleanup_failed", "error", derr)
			}
			l.Warn("refresh_failed", "reason", "owner gone", "user_id", stored.UserID)
			return nil, ErrInvalidRefreshToken
		}
		l.Error("refresh_failed", "error", err)
		return nil, err
	}

	if !user.IsActive {
		if err := s.Repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
			l.Error("refresh_cleanup_failed", "error", err)
		}
		l.Warn("refresh_failed", "reason", "owner inactive", "user_id", user.ID)
		return nil, ErrAccountDeactivated
	}

	// Role and username are re-read from the live record, never trusted from
	// the old token.
	accessToken, _, err := s.Tokens.SignAccess(user.ID, user.Username, user.Role)
	if err != nil {
		l.Error("refresh_failed", "reason", "cannot sign access token", "error", err)
		return nil, err
	}

	l.Info("refresh_successful", "user_id", user.ID)
	return &RefreshResult{AccessToken: accessToken, User: summarize(user)}, nil
}

// Logout revokes one refresh token scoped to the calling user. Idempotent,
// a non-matching token is a silent no-op.
func (s *AuthService) Logout(ctx context.Context, userID uint, refreshToken string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout", "user_id", userID)

	if refreshToken == "" {
		l.Info("logout_without_token")
		return nil
	}

	if err := s.Repo.DeleteUserRefreshToken(ctx, userID, refreshToken); err != nil {
		l.Error("logout_failed", "error", err)
		return err
	}

	l.Info("logout_successful")
	return nil
}

// LogoutAll revokes every session of the user and reports the count.
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) (int64, error) {
	l := logging.FromContext(ctx).With("svc", "auth.logout_all", "user_id", userID)

	removed, err := s.Repo.DeleteAllUserRefreshTokens(ctx, userID)
	if err != nil {
		l.Error("logout_all_failed", "error", err)
		return 0, err
	}

	l.Info("logout_all_successful", "tokens_removed", removed)
	s.publish(ctx, userID, map[string]any{
		"type":          "user_logged_out_all",
		"userId":        userID,
		"tokensRemoved": removed,
	})
	return removed, nil
}

// ChangePassword swaps the stored hash and revokes every refresh token of the
// user. Already-issued access tokens stay valid until their own expiry.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.change_password", "user_id", userID)

	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current and new password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("change_password_failed", "reason", "user not found")
			return ErrUserNotFound
		}
		l.Error("change_password_failed", "error", err)
		return err
	}

	if !s.Hasher.Check(user.PasswordHash, currentPassword) {
		l.Warn("change_password_failed", "reason", "invalid current password")
		return ErrWrongPassword
	}

	newHash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		l.Error("change_password_failed", "reason", "cannot hash password", "error", err)
		return err
	}

	if err := s.Repo.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		l.Error("change_password_failed", "error", err)
		return err
	}

	removed, err := s.Repo.DeleteAllUserRefreshTokens(ctx, userID)
	if err != nil {
		l.Error("change_password_revoke_failed", "error", err)
		return err
	}

	l.Info("change_password_successful", "tokens_removed", removed)
	s.publish(ctx, userID, map[string]any{
		"type":   "user_password_changed",
		"userId": userID,
	})
	return nil
}

// CurrentUser returns the live record, so role or active-flag changes are
// visible on the next "who am I" call even though the bearer token itself
// cannot be recalled.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*UserSummary, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	sum := summarize(user)
	return &sum, nil
}

func (s *AuthService) publish(ctx context.Context, userID uint, event map[string]any) {
	if err := s.Events.PublishEvent(ctx, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "error", err)
	}
}
