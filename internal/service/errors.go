package service

import "errors"

// Sentinel errors shared by services. Handlers translate them to HTTP codes:
// ErrValidation -> 400, the credential/token family -> 401, ErrConflict -> 409.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("already exists")

	// Deliberately the same text for unknown user and wrong password.
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrUserNotFound        = errors.New("user not found")
)
