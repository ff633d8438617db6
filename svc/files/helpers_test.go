package files_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filesmanager/pkg/file"
	"github.com/dmitrymomot/filesmanager/pkg/queue"
	"github.com/dmitrymomot/filesmanager/svc/files"
	"github.com/dmitrymomot/filesmanager/svc/store"
)

const (
	alice = "5f1e7cda04a394508232559d"
	bob   = "5f1e7cda04a394508232559e"
)

type fixture struct {
	svc     *files.Service
	records *store.Memory
	blobs   *file.LocalStorage
	tasks   *queue.MemoryStorage
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	records := store.NewMemory()
	blobs, err := file.NewLocalStorage(t.TempDir() + "/files")
	require.NoError(t, err)

	tasks := queue.NewMemoryStorage()
	t.Cleanup(func() { _ = tasks.Close() })
	enq, err := queue.NewEnqueuer(tasks)
	require.NoError(t, err)

	return fixture{
		svc:     files.NewService(records, blobs, enq),
		records: records,
		blobs:   blobs,
		tasks:   tasks,
	}
}

func b64(s []byte) *string {
	v := base64.StdEncoding.EncodeToString(s)
	return &v
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func mustCreate(t *testing.T, svc *files.Service, userID string, p files.CreateParams) files.File {
	t.Helper()

	f, err := svc.Create(context.Background(), userID, p)
	require.NoError(t, err)
	return f
}
