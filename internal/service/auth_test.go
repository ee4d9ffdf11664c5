package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/hash"
	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/repo"
	"github.com/ibitrepair/workshop/internal/tokens"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTokenManager() *tokens.Manager {
	return &tokens.Manager{
		Secret:     []byte("test-secret"),
		Issuer:     "workshop-api",
		Audience:   "workshop-clients",
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func newAuthService(t *testing.T) (*AuthService, *repo.GormRepo) {
	t.Helper()
	r := repo.New(newTestDB(t))
	svc := &AuthService{
		Repo:   r,
		Tokens: newTokenManager(),
		Hasher: hash.Hasher{Cost: bcrypt.MinCost},
	}
	return svc, r
}

func createUser(t *testing.T, svc *AuthService, r *repo.GormRepo, username, password, role string, active bool) *models.User {
	t.Helper()
	hashed, err := svc.Hasher.Hash(password)
	require.NoError(t, err)
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hashed,
		FullName:     "Test " + username,
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	res, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	require.Equal(t, user.ID, res.User.ID)
	require.Equal(t, "admin", res.User.Username)
	require.Equal(t, models.RoleAdmin, res.User.Role)

	claims, err := svc.Tokens.ParseAccess(res.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, models.RoleAdmin, claims.Role)
	id, err := tokens.UserID(claims.Subject)
	require.NoError(t, err)
	require.Equal(t, user.ID, id)

	// the refresh token must be persisted
	stored, err := r.GetRefreshToken(ctx, res.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.UserID)
	require.True(t, stored.ExpiresAt.After(time.Now()))
}

func TestLoginValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	for _, tc := range []struct{ username, password string }{
		{"", ""},
		{"admin", ""},
		{"", "admin123"},
	} {
		_, err := svc.Login(ctx, tc.username, tc.password)
		require.ErrorIs(t, err, ErrValidation)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	_, errNoUser := svc.Login(ctx, "nobody", "admin123")
	require.ErrorIs(t, errNoUser, ErrInvalidCredentials)

	_, errBadPass := svc.Login(ctx, "admin", "wrong")
	require.ErrorIs(t, errBadPass, ErrInvalidCredentials)

	// unknown user and wrong password are indistinguishable to the caller
	require.Equal(t, errNoUser.Error(), errBadPass.Error())
}

func TestLoginDeactivated(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	createUser(t, svc, r, "ghost", "secret123", models.RoleTechnician, false)

	_, err := svc.Login(ctx, "ghost", "secret123")
	require.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	login, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	res, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.Equal(t, user.ID, res.User.ID)

	// no rotation: the same refresh token stays usable
	res2, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, res2.AccessToken)
}

func TestRefreshPicksUpRoleChange(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "tech", "tech123", models.RoleTechnician, true)

	login, err := svc.Login(ctx, "tech", "tech123")
	require.NoError(t, err)

	user.Role = models.RoleManager
	require.NoError(t, r.SaveUser(ctx, user))

	res, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.Tokens.ParseAccess(res.AccessToken)
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, claims.Role)
}

func TestRefreshUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	// a well-formed token that was never persisted is rejected too
	signed, _, err := svc.Tokens.SignRefresh(42)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, signed)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshEmptyToken(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Refresh(context.Background(), "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestRefreshExpiredDeletesRow(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	signed, _, err := svc.Tokens.SignRefresh(user.ID)
	require.NoError(t, err)
	require.NoError(t, r.CreateRefreshToken(ctx, user.ID, signed, time.Now().Add(-time.Minute)))

	_, err = svc.Refresh(ctx, signed)
	require.ErrorIs(t, err, ErrRefreshTokenExpired)

	// the row is gone, so the second attempt fails differently
	_, err = svc.Refresh(ctx, signed)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshLapsedSignatureIsPlainInvalid(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	// sign with a lapsed exp claim but keep the stored row fresh
	stale := newTokenManager()
	stale.RefreshTTL = -time.Minute
	signed, _, err := stale.SignRefresh(user.ID)
	require.NoError(t, err)
	require.NoError(t, r.CreateRefreshToken(ctx, user.ID, signed, time.Now().Add(time.Hour)))

	_, err = svc.Refresh(ctx, signed)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	// verification failures never touch the store
	count, err := r.CountUserRefreshTokens(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	_, err = svc.Refresh(ctx, signed)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshDeactivatedOwnerDeletesRow(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	login, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, r.SaveUser(ctx, user))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, ErrAccountDeactivated)

	count, err := r.CountUserRefreshTokens(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	login, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID, login.RefreshToken))
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	// repeating the logout is a no-op, as is an empty token
	require.NoError(t, svc.Logout(ctx, user.ID, login.RefreshToken))
	require.NoError(t, svc.Logout(ctx, user.ID, ""))
}

func TestLogoutDoesNotTouchOtherUsers(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	createUser(t, svc, r, "alice", "alice123", models.RoleManager, true)
	bob := createUser(t, svc, r, "bob", "bob12345", models.RoleTechnician, true)

	aliceLogin, err := svc.Login(ctx, "alice", "alice123")
	require.NoError(t, err)

	// bob presents alice's token; her session must survive
	require.NoError(t, svc.Logout(ctx, bob.ID, aliceLogin.RefreshToken))
	_, err = svc.Refresh(ctx, aliceLogin.RefreshToken)
	require.NoError(t, err)
}

func TestLogoutAll(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, "admin", "admin123")
		require.NoError(t, err)
	}

	removed, err := svc.LogoutAll(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, removed)

	removed, err = svc.LogoutAll(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	login, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "admin123", "newpass456"))

	// old password is dead, new one works
	_, err = svc.Login(ctx, "admin", "admin123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "admin", "newpass456")
	require.NoError(t, err)

	// every pre-change session is revoked
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestChangePasswordRejections(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	require.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "", "x"), ErrValidation)
	require.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "wrong", "newpass456"), ErrWrongPassword)
	require.ErrorIs(t, svc.ChangePassword(ctx, 9999, "admin123", "newpass456"), ErrUserNotFound)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	svc, r := newAuthService(t)
	user := createUser(t, svc, r, "admin", "admin123", models.RoleAdmin, true)

	sum, err := svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, sum.ID)
	require.Equal(t, "admin", sum.Username)

	_, err = svc.CurrentUser(ctx, 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
