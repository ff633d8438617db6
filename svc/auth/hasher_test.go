package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/filesmanager/svc/auth"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := auth.NewBcryptHasher(bcrypt.MinCost)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		digest, err := h.Hash("toto1234!")
		require.NoError(t, err)
		assert.NotEqual(t, "toto1234!", digest)
		assert.True(t, h.Compare(digest, "toto1234!"))
		assert.False(t, h.Compare(digest, "toto1234"))
	})

	t.Run("passwords longer than 72 bytes", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("p", 100)
		digest, err := h.Hash(long)
		require.NoError(t, err)
		assert.True(t, h.Compare(digest, long))
		assert.False(t, h.Compare(digest, long[:73]), "bytes past 72 must still count")
	})

	t.Run("invalid cost falls back to default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, bcrypt.DefaultCost, auth.NewBcryptHasher(99).Cost)
		assert.Equal(t, bcrypt.DefaultCost, auth.NewBcryptHasher(0).Cost)
	})
}
