package thumbnail

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

const (
	// JPEGQuality is used when the source is a JPEG.
	JPEGQuality = 85
	// MaxPixels bounds both the decoded source and the scaled output.
	MaxPixels = 40_000_000
)

// Resize scales the image read from r to width pixels wide. Sources narrower
// than width are scaled up, matching the behaviour clients expect from a
// fixed-width variant. The returned format is "png" or "jpeg".
func Resize(r io.Reader, width int) ([]byte, string, error) {
	if width <= 0 {
		return nil, "", ErrInvalidWidth
	}

	// The header is inspected before any pixel buffer is allocated.
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", errors.Join(ErrDecode, err)
	}
	if tooLarge(cfg.Width, cfg.Height) {
		return nil, "", ErrImageTooLarge
	}
	if w, h := Dimensions(image.Rect(0, 0, cfg.Width, cfg.Height), width); tooLarge(w, h) {
		return nil, "", ErrImageTooLarge
	}

	src, format, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", errors.Join(ErrDecode, err)
	}

	dst := scale(src, width)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality})
	default:
		format = "png"
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, "", errors.Join(ErrEncode, err)
	}
	return buf.Bytes(), format, nil
}

// Dimensions returns the target size for a source of the given bounds.
func Dimensions(bounds image.Rectangle, width int) (int, int) {
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 {
		return width, 0
	}
	height := int(float64(h) * float64(width) / float64(w))
	if height < 1 {
		height = 1
	}
	return width, height
}

func tooLarge(w, h int) bool {
	return w > 0 && h > MaxPixels/w
}

func scale(src image.Image, width int) *image.RGBA {
	w, h := Dimensions(src.Bounds(), width)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
