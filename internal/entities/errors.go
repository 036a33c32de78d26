package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed client input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidURL is returned when a target URL cannot be parsed or normalized.
	ErrInvalidURL = errors.New("invalid URL format")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// ErrURLNotFound is also returned when the URL exists but belongs to someone else.
	ErrURLNotFound = errors.New("URL not found")
	ErrSlugExists  = errors.New("slug already exists")
	ErrURLInactive = errors.New("URL is inactive")
	ErrURLExpired  = errors.New("URL has expired")

	ErrPasswordNotSet  = errors.New("URL does not require password")
	ErrInvalidPassword = errors.New("invalid password")

	// ErrSlugSpaceExhausted is returned when no free slug was found within the attempt budget.
	ErrSlugSpaceExhausted = errors.New("failed to generate unique slug")
)

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError formats a ValidationError
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
