// Package domain defines authentication domain types and errors.
package domain

import (
	apperrors "github.com/allisson/familyvault/internal/errors"
)

var (
	// ErrInvalidCredentials is returned when the email or password does not match a live user
	ErrInvalidCredentials = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid email or password")

	// ErrInvalidToken is returned when an access token is missing, malformed, expired or tampered
	ErrInvalidToken = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid or expired access token")
)
