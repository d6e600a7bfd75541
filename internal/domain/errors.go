package domain

import (
	"errors"
	"fmt"
)

// Authentication errors. Login failures are deliberately generic so callers
// cannot tell a missing account from a wrong password.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenUserNotFound  = errors.New("user not found")
)

// Authorization errors.
var (
	ErrEmailNotVerified = errors.New("email not verified")
	ErrInsufficientRole = errors.New("insufficient role")
	ErrSelfDelete       = errors.New("admins cannot delete their own account")
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError signals malformed input or a violated business rule.
// The message is always safe to surface to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ConflictError signals a uniqueness violation on the named field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already in use", e.Field)
}

func NewConflictError(field string) *ConflictError {
	return &ConflictError{Field: field}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
