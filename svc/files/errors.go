package files

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("file not found")
	ErrInvalidData        = errors.New("invalid base64 data")
	ErrInvalidParent      = errors.New("parent not found")
	ErrParentNotFolder    = errors.New("parent is not a folder")
	ErrFolderHasNoContent = errors.New("folder has no content")
	ErrStorageWrite       = errors.New("failed to store file content")

	// Job failures. The text is what ends up in the dead letter queue.
	ErrMissingFileID = errors.New("Missing fileId")
	ErrMissingUserID = errors.New("Missing userId")
	ErrFileNotFound  = errors.New("File not found")
)

// MissingFieldError reports a required field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return "Missing " + e.Field
}
