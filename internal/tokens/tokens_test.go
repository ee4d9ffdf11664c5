package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return &Manager{
		Secret:     []byte("test-secret"),
		Issuer:     "workshop-api",
		Audience:   "workshop-clients",
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func TestAccessRoundTrip(t *testing.T) {
	m := testManager()

	signed, exp, err := m.SignAccess(42, "admin", "ADMIN")
	require.NoError(t, err)
	require.InDelta(t, time.Until(exp).Seconds(), time.Hour.Seconds(), 5)

	claims, err := m.ParseAccess(signed)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, "ADMIN", claims.Role)
	require.Equal(t, "workshop-api", claims.Issuer)

	id, err := UserID(claims.Subject)
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
}

func TestRefreshRoundTrip(t *testing.T) {
	m := testManager()

	signed, _, err := m.SignRefresh(7)
	require.NoError(t, err)

	claims, err := m.ParseRefresh(signed)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	id, err := UserID(claims.Subject)
	require.NoError(t, err)
	require.EqualValues(t, 7, id)

	// every refresh token gets a unique jti
	signed2, _, err := m.SignRefresh(7)
	require.NoError(t, err)
	claims2, err := m.ParseRefresh(signed2)
	require.NoError(t, err)
	require.NotEqual(t, claims.ID, claims2.ID)
}

func TestParseRejectsBadTokens(t *testing.T) {
	m := testManager()

	_, err := m.ParseAccess("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	// wrong secret
	other := testManager()
	other.Secret = []byte("other-secret")
	signed, _, err := other.SignAccess(1, "u", "ADMIN")
	require.NoError(t, err)
	_, err = m.ParseAccess(signed)
	require.ErrorIs(t, err, ErrInvalidToken)

	// wrong issuer
	other = testManager()
	other.Issuer = "someone-else"
	signed, _, err = other.SignAccess(1, "u", "ADMIN")
	require.NoError(t, err)
	_, err = m.ParseAccess(signed)
	require.ErrorIs(t, err, ErrInvalidToken)

	// wrong audience
	other = testManager()
	other.Audience = "other-clients"
	signed, _, err = other.SignAccess(1, "u", "ADMIN")
	require.NoError(t, err)
	_, err = m.ParseAccess(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	m := testManager()
	m.AccessTTL = -time.Minute

	signed, _, err := m.SignAccess(1, "u", "ADMIN")
	require.NoError(t, err)

	_, err = m.ParseAccess(signed)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestUserIDRejectsGarbage(t *testing.T) {
	_, err := UserID("abc")
	require.ErrorIs(t, err, ErrInvalidToken)
}
