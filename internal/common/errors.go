// Package common defines shared constants and sentinel errors used across
// the engine, the server and the terminal client. Callers should use
// errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrStorage is the sanitized form of any store fault. The raw cause is
	// logged by the service and never handed to the caller.
	ErrStorage = errors.New("storage unavailable")

	// Validation errors. Every specific validation error wraps ErrValidation.
	ErrValidation        = errors.New("validation error")
	ErrUsernameRequired  = fmt.Errorf("%w: username is required", ErrValidation)
	ErrUsernameTooShort  = fmt.Errorf("%w: username must be at least %d characters", ErrValidation, MinUsernameLength)
	ErrUsernameTaken     = errors.New("username already exists")
	ErrIncompleteAttempt = fmt.Errorf("%w: incomplete attempt", ErrValidation)
	ErrInvalidCredential = fmt.Errorf("%w: invalid credential", ErrValidation)

	// Lookup errors. None of them consumes an attempt.
	ErrUserNotFound    = errors.New("username not found")
	ErrInvalidUserData = errors.New("invalid user data")
	ErrMethodMismatch  = errors.New("authentication method mismatch")

	// Attempt session errors.
	ErrSessionLocked  = errors.New("session locked")
	ErrSessionClosed  = errors.New("session closed")
	ErrSessionUnknown = errors.New("unknown session")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// UserMessage converts an error returned by the engine into the text shown
// to the person at the keyboard. Unknown errors collapse into a generic
// retry message so raw causes never reach the screen.
func UserMessage(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUsernameRequired):
		return "Username is required"
	case errors.Is(err, ErrUsernameTooShort):
		return fmt.Sprintf("Username must be at least %d characters", MinUsernameLength)
	case errors.Is(err, ErrUsernameTaken):
		return "Username already exists"
	case errors.Is(err, ErrUserNotFound):
		return "Username not found"
	case errors.Is(err, ErrInvalidUserData):
		return "Invalid user data"
	case errors.Is(err, ErrMethodMismatch):
		return "Authentication method does not match this account"
	case errors.Is(err, ErrSessionLocked):
		return "Maximum attempts reached. Please start over."
	case errors.Is(err, ErrSessionClosed), errors.Is(err, ErrSessionUnknown):
		return "Login session has ended. Please start over."
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, ErrValidation):
		return "Invalid input"
	case errors.Is(err, ErrStorage):
		return "Failed to register. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// ValidationError is a caller-correctable failure. Message is written for
// the end user; Kind is the sentinel it matches through errors.Is.
type ValidationError struct {
	Kind    error
	Message string
}

// NewValidationError builds a ValidationError of the given kind.
func NewValidationError(kind error, format string, args ...any) error {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
