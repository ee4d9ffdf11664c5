package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/hash"
	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/repo"
)

func newUserService(t *testing.T) (*UserService, *repo.GormRepo) {
	t.Helper()
	r := repo.New(newTestDB(t))
	return &UserService{Repo: r, Hasher: hash.Hasher{Cost: bcrypt.MinCost}}, r
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	user, err := svc.Create(ctx, CreateUserInput{
		Username: "reception1",
		Email:    "reception1@example.com",
		Password: "front123",
		FullName: "Front Desk",
		Role:     models.RoleReceptionist,
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.True(t, user.IsActive)
	require.NotEqual(t, "front123", user.PasswordHash)

	_, err = svc.Create(ctx, CreateUserInput{
		Username: "reception1",
		Email:    "other@example.com",
		Password: "front123",
		Role:     models.RoleReceptionist,
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateUserValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	_, err := svc.Create(ctx, CreateUserInput{Username: "x", Email: "x@example.com", Password: ""})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, CreateUserInput{
		Username: "x", Email: "x@example.com", Password: "secret12", Role: "WIZARD",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	user, err := svc.Create(ctx, CreateUserInput{
		Username: "tech2",
		Email:    "tech2@example.com",
		Password: "tech123",
		Role:     models.RoleTechnician,
	})
	require.NoError(t, err)

	newRole := models.RoleManager
	newName := "Promoted Tech"
	updated, err := svc.Update(ctx, user.ID, UpdateUserInput{Role: &newRole, FullName: &newName})
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, updated.Role)
	require.Equal(t, "Promoted Tech", updated.FullName)
	// untouched fields survive a partial update
	require.Equal(t, "tech2@example.com", updated.Email)

	badRole := "WIZARD"
	_, err = svc.Update(ctx, user.ID, UpdateUserInput{Role: &badRole})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, 9999, UpdateUserInput{})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeactivateUserRevokesSessions(t *testing.T) {
	ctx := context.Background()
	svc, r := newUserService(t)

	user, err := svc.Create(ctx, CreateUserInput{
		Username: "tech3",
		Email:    "tech3@example.com",
		Password: "tech123",
		Role:     models.RoleTechnician,
	})
	require.NoError(t, err)

	auth := &AuthService{Repo: r, Tokens: newTokenManager(), Hasher: svc.Hasher}
	_, err = auth.Login(ctx, "tech3", "tech123")
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(ctx, user.ID, UpdateUserInput{IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	count, err := r.CountUserRefreshTokens(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, r := newUserService(t)

	user, err := svc.Create(ctx, CreateUserInput{
		Username: "tech4",
		Email:    "tech4@example.com",
		Password: "oldpass1",
		Role:     models.RoleTechnician,
	})
	require.NoError(t, err)

	auth := &AuthService{Repo: r, Tokens: newTokenManager(), Hasher: svc.Hasher}
	login, err := auth.Login(ctx, "tech4", "oldpass1")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, user.ID, "newpass1"))

	_, err = auth.Login(ctx, "tech4", "oldpass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "tech4", "newpass1")
	require.NoError(t, err)
	_, err = auth.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	require.ErrorIs(t, svc.ResetPassword(ctx, user.ID, ""), ErrValidation)
	require.ErrorIs(t, svc.ResetPassword(ctx, 9999, "whatever1"), gorm.ErrRecordNotFound)
}
