package store

import (
	"context"
	"math"
)

// Store is the credential and file record store.
type Store interface {
	InsertUser(ctx context.Context, u *User) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
	CountUsers(ctx context.Context) (int64, error)

	InsertFile(ctx context.Context, f *File) error
	// FindFile looks a file up by id. A non-empty ownerID restricts the
	// lookup to that owner.
	FindFile(ctx context.Context, id, ownerID string) (*File, error)
	SetFileVisibility(ctx context.Context, id, ownerID string, isPublic bool) (*File, error)
	// ListFiles returns page (zero based) of size records ordered by id.
	ListFiles(ctx context.Context, filter FileFilter, page, size int) ([]*File, error)
	CountFiles(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
}

// offset returns the number of records before page. ok is false when the
// page cannot hold any record.
func offset(page, size int) (n int, ok bool) {
	if page < 0 || size <= 0 || page > (math.MaxInt-size)/size {
		return 0, false
	}
	return page * size, true
}
