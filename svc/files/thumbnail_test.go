package files_test

import (
	"bytes"
	"context"
	"image"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filesmanager/pkg/queue"
	"github.com/dmitrymomot/filesmanager/svc/files"
)

func TestThumbnailProcessor_Process(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("job validation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := files.NewThumbnailProcessor(f.records, f.blobs, nil)

		assert.EqualError(t, p.Process(ctx, files.ThumbnailJob{UserID: alice}), "Missing fileId")
		assert.EqualError(t, p.Process(ctx, files.ThumbnailJob{FileID: "x"}), "Missing userId")
		assert.EqualError(t, p.Process(ctx, files.ThumbnailJob{UserID: alice, FileID: "5f1e7cda04a3945082325500"}), "File not found")
	})

	t.Run("other owner is not found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		img := mustCreate(t, f.svc, alice, files.CreateParams{Name: "a.png", Type: "image", Data: b64(pngBytes(t, 10, 10))})

		p := files.NewThumbnailProcessor(f.records, f.blobs, nil)
		assert.ErrorIs(t, p.Process(ctx, files.ThumbnailJob{UserID: bob, FileID: img.ID}), files.ErrFileNotFound)
	})

	t.Run("writes every width", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		original := pngBytes(t, 40, 20)
		img := mustCreate(t, f.svc, alice, files.CreateParams{Name: "image.png", Type: "image", Data: b64(original)})

		p := files.NewThumbnailProcessor(f.records, f.blobs, nil)
		require.NoError(t, p.Process(ctx, files.ThumbnailJob{UserID: alice, FileID: img.ID}))

		for _, width := range files.Widths {
			c, err := f.svc.ReadContent(ctx, alice, img.ID, width)
			require.NoError(t, err)
			raw, err := io.ReadAll(c.Body)
			require.NoError(t, c.Body.Close())
			require.NoError(t, err)

			assert.NotEqual(t, original, raw)
			cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
			require.NoError(t, err)
			assert.Equal(t, "png", format)
			assert.Equal(t, width, cfg.Width)
			assert.Equal(t, width/2, cfg.Height)
		}
	})

	t.Run("undecodable image fails the job", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		img := mustCreate(t, f.svc, alice, files.CreateParams{Name: "fake.png", Type: "image", Data: b64([]byte("not an image"))})

		p := files.NewThumbnailProcessor(f.records, f.blobs, nil)
		err := p.Process(ctx, files.ThumbnailJob{UserID: alice, FileID: img.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "width 500")
		assert.Contains(t, err.Error(), "width 100")
	})
}

func TestThumbnailProcessor_Worker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	w, err := queue.NewWorker(f.tasks,
		queue.WithQueues(files.Queue),
		queue.WithPullInterval(5*time.Millisecond),
	)
	require.NoError(t, err)
	w.RegisterHandlers(files.NewThumbnailProcessor(f.records, f.blobs, nil).Handler())
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { _ = w.Stop() })

	good := mustCreate(t, f.svc, alice, files.CreateParams{Name: "good.png", Type: "image", Data: b64(pngBytes(t, 12, 12))})
	mustCreate(t, f.svc, alice, files.CreateParams{Name: "bad.png", Type: "image", Data: b64([]byte("garbage"))})

	require.Eventually(t, func() bool {
		_, err := f.svc.ReadContent(ctx, alice, good.ID, 100)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		dead, err := f.tasks.DeadLetters(ctx)
		return err == nil && len(dead) == 1
	}, 5*time.Second, 10*time.Millisecond)
}
