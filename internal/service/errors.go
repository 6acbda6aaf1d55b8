package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Handlers map these to HTTP
// statuses with errors.Is; anything else is an opaque server error.
var (
	// ErrValidation marks missing or malformed input (400).
	ErrValidation = errors.New("validation failed")

	// Not-found conditions (404). Kept distinct from ErrForbidden so a
	// resource that exists but belongs to someone else never reads as
	// missing.
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrFavoriteNotFound = errors.New("favorite not found")

	// ErrForbidden marks an authenticated actor without rights (403).
	ErrForbidden = errors.New("operation not allowed")

	// Authentication failures (401).
	ErrInvalidCredentials   = errors.New("email or password invalid")
	ErrInvalidToken         = errors.New("invalid token")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrEmailAlreadyVerified = errors.New("email already verified")

	// ErrEmailInUse marks a duplicate registration (409).
	ErrEmailInUse = errors.New("email already in use")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
