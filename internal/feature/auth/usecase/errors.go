// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrAccountNotFound is returned when an account cannot be found by email or ID.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists is returned when attempting to register an email that is already taken.
	ErrAccountExists = errors.New("account already exists")

	// ErrInvalidCredentials is returned on login when the email is unknown or the
	// password does not match. The two causes are intentionally indistinguishable
	// so callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a rejected input field before any store or hash
// operation has run. Message is safe to return to the caller.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given caller-facing message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
