package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
	ErrRefreshCookieAbsent = errors.New("refresh token cookie not found")
	ErrOAuthEmailNotFound  = errors.New("no account registered for this google email")
)
