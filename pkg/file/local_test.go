package file_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filesmanager/pkg/file"
)

func TestLocalStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("put open stat delete", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		obj, err := s.Put(ctx, "abc", strings.NewReader("Hello Webstack!"))
		require.NoError(t, err)
		assert.Equal(t, "abc", obj.Key)
		assert.Equal(t, int64(15), obj.Size)

		info, err := s.Stat(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, obj, info)

		rc, err := s.Open(ctx, "abc")
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "Hello Webstack!", string(data))

		require.NoError(t, s.Delete(ctx, "abc"))
		_, err = s.Stat(ctx, "abc")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
		require.NoError(t, s.Delete(ctx, "abc"))
	})

	t.Run("root is created on demand", func(t *testing.T) {
		t.Parallel()
		root := filepath.Join(t.TempDir(), "nested", "files_manager")
		s, err := file.NewLocalStorage(root)
		require.NoError(t, err)

		_, err = os.Stat(root)
		assert.True(t, os.IsNotExist(err))

		_, err = s.Put(ctx, "k", strings.NewReader("x"))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(root, "k"))
		assert.NoError(t, err)

		require.NoError(t, os.RemoveAll(root))
		_, err = s.Put(ctx, "k_250", strings.NewReader("y"))
		require.NoError(t, err)
	})

	t.Run("overwrite replaces content", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		_, err = s.Put(ctx, "k", strings.NewReader("first version"))
		require.NoError(t, err)
		_, err = s.Put(ctx, "k", bytes.NewReader([]byte("v2")))
		require.NoError(t, err)

		rc, err := s.Open(ctx, "k")
		require.NoError(t, err)
		defer rc.Close()
		data, _ := io.ReadAll(rc)
		assert.Equal(t, "v2", string(data))

		entries, err := os.ReadDir(s.Root())
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temporary files left behind")
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		_, err = s.Open(ctx, "missing")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("keys cannot escape the root", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		for _, key := range []string{"", "../etc/passwd", "a/../../b", "a\\b", "a/", "./a"} {
			_, err := s.Put(ctx, key, strings.NewReader("x"))
			assert.ErrorIs(t, err, file.ErrInvalidKey, key)
			_, err = s.Open(ctx, key)
			assert.ErrorIs(t, err, file.ErrInvalidKey, key)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		s, err := file.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err = s.Put(cctx, "k", strings.NewReader("x"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty root rejected", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewLocalStorage("")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	s, err := file.New(context.Background(), file.Config{Driver: file.DriverLocal, Root: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &file.LocalStorage{}, s)

	_, err = file.New(context.Background(), file.Config{Driver: "ftp"})
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
}
