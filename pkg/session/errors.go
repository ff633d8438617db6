package session

import "errors"

var (
	// ErrSessionNotFound means the token is unknown, revoked or expired.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrNoStore indicates the manager was built without a store.
	ErrNoStore = errors.New("session.no_store")

	// ErrInvalidUserID is returned when issuing a session for an empty user id.
	ErrInvalidUserID = errors.New("session.invalid_user_id")
)
