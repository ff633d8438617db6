package auth

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailAlreadyExists = errors.New("email already exists")

	ErrMissingUserID = errors.New("Missing userId")
	ErrUserNotFound  = errors.New("User not found")
)

// MissingFieldError reports a required request field that was absent or
// empty.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return "Missing " + e.Field
}
