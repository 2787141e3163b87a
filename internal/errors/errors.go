// Package errors defines the domain error taxonomy shared by every module.
// Use cases wrap these sentinels with context; the HTTP layer maps them to
// status codes without inspecting message text.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested resource does not exist or is
	// soft-deleted. Access-control failures on items also surface as
	// ErrNotFound so callers cannot probe for records they were never
	// granted.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the write collides with live data, such as a
	// duplicate email, duplicate category name or duplicate share grant.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user may not perform the
	// operation, such as mutating a system category or an inactive account
	// logging in.
	ErrForbidden = errors.New("forbidden")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap adds context to err while keeping the sentinel reachable through the
// error chain. Returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
