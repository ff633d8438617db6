package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Memory is an in-process Store. Records are copied in and out so callers
// never share state with the store.
type Memory struct {
	mu     sync.RWMutex
	users  map[string]User
	emails map[string]string
	files  map[string]File
	order  []string
}

func NewMemory() *Memory {
	return &Memory{
		users:  make(map[string]User),
		emails: make(map[string]string),
		files:  make(map[string]File),
	}
}

func (m *Memory) InsertUser(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.emails[u.Email]; ok {
		return ErrDuplicate
	}
	u.ID = bson.NewObjectID().Hex()
	m.users[u.ID] = *u
	m.emails[u.Email] = u.ID
	return nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

func (m *Memory) FindUserByID(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) CountUsers(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *Memory) InsertFile(_ context.Context, f *File) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f.ID = bson.NewObjectID().Hex()
	m.files[f.ID] = *f
	m.order = append(m.order, f.ID)
	return nil
}

func (m *Memory) FindFile(_ context.Context, id, ownerID string) (*File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[id]
	if !ok || (ownerID != "" && f.UserID != ownerID) {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (m *Memory) SetFileVisibility(_ context.Context, id, ownerID string, isPublic bool) (*File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[id]
	if !ok || f.UserID != ownerID {
		return nil, ErrNotFound
	}
	f.IsPublic = isPublic
	m.files[id] = f
	return &f, nil
}

func (m *Memory) ListFiles(_ context.Context, filter FileFilter, page, size int) ([]*File, error) {
	skip, ok := offset(page, size)
	if !ok {
		return []*File{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := slices.Clone(m.order)
	slices.SortFunc(ids, strings.Compare)

	result := make([]*File, 0, size)
	for _, id := range ids {
		f := m.files[id]
		if filter.UserID != "" && f.UserID != filter.UserID {
			continue
		}
		if filter.ParentID != nil && f.ParentID != *filter.ParentID {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if len(result) == size {
			break
		}
		result = append(result, &f)
	}
	return result, nil
}

func (m *Memory) CountFiles(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.files)), nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}
