package file

import (
	"context"
	"io"
	"path"
	"strings"
)

// Object describes a stored blob.
type Object struct {
	Key  string
	Size int64
}

// Storage persists opaque blobs under slash separated keys.
// Put overwrites existing keys, so regenerating derived content is idempotent.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader) (*Object, error)
	// Open returns ErrFileNotFound for missing keys.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Stat returns the key and size of a stored blob, or ErrFileNotFound.
	Stat(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// cleanKey normalises key and rejects anything that could escape the
// storage root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.ContainsRune(key, 0) || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
