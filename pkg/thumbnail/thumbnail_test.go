package thumbnail_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filesmanager/pkg/thumbnail"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeader returns a PNG signature and IHDR chunk without any pixel data.
func pngHeader(w, h uint32) []byte {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], w)
	binary.BigEndian.PutUint32(data[4:8], h)
	data[8] = 8 // bit depth
	data[9] = 6 // RGBA

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(data)))
	chunk := append([]byte("IHDR"), data...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestResize(t *testing.T) {
	t.Parallel()

	t.Run("png keeps aspect ratio", func(t *testing.T) {
		t.Parallel()
		src := encodePNG(t, testImage(1000, 600))

		out, format, err := thumbnail.Resize(bytes.NewReader(src), 250)
		require.NoError(t, err)
		assert.Equal(t, "png", format)

		img, err := png.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 250, img.Bounds().Dx())
		assert.Equal(t, 150, img.Bounds().Dy())
		assert.NotEqual(t, src, out)
	})

	t.Run("jpeg stays jpeg", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, testImage(200, 100), nil))

		out, format, err := thumbnail.Resize(&buf, 100)
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)

		cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Width)
		assert.Equal(t, 50, cfg.Height)
	})

	t.Run("gif is re-encoded as png", func(t *testing.T) {
		t.Parallel()
		pal := image.NewPaletted(image.Rect(0, 0, 40, 40), color.Palette{color.Black, color.White})
		var buf bytes.Buffer
		require.NoError(t, gif.Encode(&buf, pal, nil))

		out, format, err := thumbnail.Resize(&buf, 500)
		require.NoError(t, err)
		assert.Equal(t, "png", format)

		cfg, err := png.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 500, cfg.Width)
		assert.Equal(t, 500, cfg.Height)
	})

	t.Run("not an image", func(t *testing.T) {
		t.Parallel()
		_, _, err := thumbnail.Resize(strings.NewReader("Hello Webstack!"), 100)
		assert.ErrorIs(t, err, thumbnail.ErrUnsupportedFormat)
	})

	t.Run("oversized source is rejected from header", func(t *testing.T) {
		t.Parallel()
		_, _, err := thumbnail.Resize(bytes.NewReader(pngHeader(100000, 100000)), 100)
		assert.ErrorIs(t, err, thumbnail.ErrImageTooLarge)
	})

	t.Run("oversized output is rejected", func(t *testing.T) {
		t.Parallel()
		src := encodePNG(t, testImage(1, 200))

		_, _, err := thumbnail.Resize(bytes.NewReader(src), 500)
		assert.ErrorIs(t, err, thumbnail.ErrImageTooLarge)
	})

	t.Run("truncated header", func(t *testing.T) {
		t.Parallel()
		hdr := pngHeader(10, 10)

		_, _, err := thumbnail.Resize(bytes.NewReader(hdr[:20]), 100)
		assert.ErrorIs(t, err, thumbnail.ErrDecode)
	})

	t.Run("invalid width", func(t *testing.T) {
		t.Parallel()
		_, _, err := thumbnail.Resize(bytes.NewReader(encodePNG(t, testImage(10, 10))), 0)
		assert.ErrorIs(t, err, thumbnail.ErrInvalidWidth)
	})
}

func TestDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		bounds       image.Rectangle
		width        int
		wantW, wantH int
	}{
		{"landscape", image.Rect(0, 0, 1000, 500), 500, 500, 250},
		{"portrait", image.Rect(0, 0, 100, 400), 250, 250, 1000},
		{"very wide", image.Rect(0, 0, 10000, 1), 100, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, h := thumbnail.Dimensions(tt.bounds, tt.width)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
