package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// AccessClaims travel inside the short-lived bearer token. Subject holds the
// user id.
type AccessClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carry only the owning user id (Subject) and a random token id
// (ID). Everything else about a refresh token lives in the database row.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// Manager signs and verifies both token kinds with a single HS256 secret.
type Manager struct {
	Secret     []byte
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (m *Manager) SignAccess(userID uint, username, role string) (string, time.Time, error) {
	exp := time.Now().Add(m.AccessTTL)
	claims := AccessClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    m.Issuer,
			Audience:  jwt.ClaimStrings{m.Audience},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (m *Manager) SignRefresh(userID uint) (string, time.Time, error) {
	exp := time.Now().Add(m.RefreshTTL)
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    m.Issuer,
			Audience:  jwt.ClaimStrings{m.Audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (m *Manager) ParseAccess(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := m.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (m *Manager) ParseRefresh(tokenStr string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := m.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (m *Manager) parse(tokenStr string, claims jwt.Claims) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, errors.New("unexpected sign method")
			}
			return m.Secret, nil
		},
		jwt.WithIssuer(m.Issuer),
		jwt.WithAudience(m.Audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return err
		}
		return ErrInvalidToken
	}
	if !tkn.Valid {
		return ErrInvalidToken
	}
	return nil
}

// UserID parses the Subject of either claim set back into a user id.
func UserID(sub string) (uint, error) {
	n, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(n), nil
}
