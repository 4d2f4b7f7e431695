package domain

import "github.com/pkg/errors"

// Error kinds. Specific errors wrap one of these so callers can match on the kind.
var (
	ErrNotFound                = errors.New("not found")
	ErrValidation              = errors.New("validation failed")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrConflict                = errors.New("conflict")
	ErrImportSourceUnavailable = errors.New("import source unavailable")
	ErrTooManyAttempts         = errors.New("too many failed login attempts")
)

var (
	ErrProductNotFound    = errors.WithMessage(ErrNotFound, "product")
	ErrUserNotFound       = errors.WithMessage(ErrNotFound, "user")
	ErrCartItemNotFound   = errors.WithMessage(ErrNotFound, "cart item")
	ErrInvalidQuantity    = errors.WithMessage(ErrValidation, "quantity must be greater than 0")
	ErrInvalidCredentials = errors.WithMessage(ErrUnauthorized, "invalid credentials")
	ErrUsernameTaken      = errors.WithMessage(ErrConflict, "username already exists")
	ErrAdminRequired      = errors.WithMessage(ErrForbidden, "admin role required")
)

// Invalid builds a validation error with the given message
func Invalid(msg string) error {
	return errors.WithMessage(ErrValidation, msg)
}
