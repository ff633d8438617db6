package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filesmanager/pkg/redis"
	"github.com/dmitrymomot/filesmanager/pkg/session"
)

func TestNew_RequiresStore(t *testing.T) {
	t.Parallel()
	m, err := session.New(nil)
	assert.ErrorIs(t, err, session.ErrNoStore)
	assert.Nil(t, m)
}

func TestManager_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stores := map[string]func(t *testing.T) session.Store{
		"memory": func(t *testing.T) session.Store {
			s := session.NewMemoryStore(0)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		"redis": func(t *testing.T) session.Store {
			srv := miniredis.RunT(t)
			client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return redis.NewStorage(client)
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := newStore(t)
			m, err := session.New(store)
			require.NoError(t, err)

			sess, err := m.Issue(ctx, "user-1")
			require.NoError(t, err)
			assert.Len(t, sess.Token, 36)
			assert.Equal(t, "user-1", sess.UserID)

			raw, err := store.Get(ctx, "auth_"+sess.Token)
			require.NoError(t, err)
			assert.Equal(t, []byte("user-1"), raw)

			userID, err := m.Resolve(ctx, sess.Token)
			require.NoError(t, err)
			assert.Equal(t, "user-1", userID)

			other, err := m.Issue(ctx, "user-1")
			require.NoError(t, err)
			assert.NotEqual(t, sess.Token, other.Token)

			require.NoError(t, m.Revoke(ctx, sess.Token))
			_, err = m.Resolve(ctx, sess.Token)
			assert.ErrorIs(t, err, session.ErrSessionNotFound)

			// other sessions of the same user survive
			userID, err = m.Resolve(ctx, other.Token)
			require.NoError(t, err)
			assert.Equal(t, "user-1", userID)

			require.NoError(t, m.Revoke(ctx, "unknown"))
		})
	}
}

func TestManager_TTLIsFixed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	m, err := session.New(redis.NewStorage(client))
	require.NoError(t, err)

	sess, err := m.Issue(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, srv.TTL("auth_"+sess.Token))

	srv.FastForward(12 * time.Hour)
	_, err = m.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, srv.TTL("auth_"+sess.Token), "resolve must not refresh the TTL")

	srv.FastForward(12*time.Hour + time.Second)
	_, err = m.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m, err := session.New(session.NewMemoryStore(0), session.WithTokenGenerator(func() (string, error) {
		return "", errors.New("entropy exhausted")
	}))
	require.NoError(t, err)

	_, err = m.Issue(ctx, "")
	assert.ErrorIs(t, err, session.ErrInvalidUserID)

	_, err = m.Issue(ctx, "user-1")
	assert.ErrorIs(t, err, session.ErrTokenGeneration)

	_, err = m.Resolve(ctx, "")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_CustomConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := session.NewMemoryStore(0)
	m, err := session.New(store,
		session.WithConfig(session.Config{TTL: time.Minute, KeyPrefix: "s:", HeaderName: "X-Token"}),
		session.WithTokenGenerator(func() (string, error) { return "fixed", nil }),
	)
	require.NoError(t, err)

	sess, err := m.Issue(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "fixed", sess.Token)

	raw, err := store.Get(ctx, "s:fixed")
	require.NoError(t, err)
	assert.Equal(t, []byte("u"), raw)
}
