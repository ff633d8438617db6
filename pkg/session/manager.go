package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/filesmanager/pkg/logger"
)

// Manager issues, resolves and revokes opaque bearer tokens.
// The store is the only copy of a session: revocation is a delete and
// expiry is the store's TTL.
type Manager struct {
	store    Store
	config   Config
	logger   *slog.Logger
	newToken func() (string, error)
}

func New(store Store, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	m := &Manager{
		store:    store,
		config:   DefaultConfig(),
		logger:   logger.Discard(),
		newToken: randomToken,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns the effective configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Issue creates a session for userID with the configured TTL.
func (m *Manager) Issue(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	token, err := m.newToken()
	if err != nil {
		return nil, errors.Join(ErrTokenGeneration, err)
	}

	if err := m.store.Set(ctx, m.key(token), []byte(userID), m.config.TTL); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.config.TTL),
	}, nil
}

// Resolve returns the user id bound to token or ErrSessionNotFound.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrSessionNotFound
	}
	val, err := m.store.Get(ctx, m.key(token))
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if len(val) == 0 {
		return "", ErrSessionNotFound
	}
	return string(val), nil
}

// Revoke deletes the session. Unknown tokens are not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, m.key(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (m *Manager) key(token string) string {
	return m.config.KeyPrefix + token
}

func randomToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
