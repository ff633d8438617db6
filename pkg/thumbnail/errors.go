package thumbnail

import "errors"

var (
	ErrInvalidWidth      = errors.New("thumbnail width must be positive")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecode            = errors.New("failed to decode image")
	ErrEncode            = errors.New("failed to encode thumbnail")
	ErrImageTooLarge     = errors.New("image dimensions exceed the pixel limit")
)
