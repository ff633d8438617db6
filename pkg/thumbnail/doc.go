// Package thumbnail produces width-bounded copies of raster images.
//
// Resize decodes PNG, JPEG and GIF input, scales it to the requested width
// with Catmull-Rom resampling while keeping the aspect ratio, and encodes the
// result in the source format (GIF sources are re-encoded as PNG). Sources or
// outputs above MaxPixels are rejected with ErrImageTooLarge after reading only
// the image header.
//
//	out, format, err := thumbnail.Resize(src, 250)
//	if errors.Is(err, thumbnail.ErrUnsupportedFormat) {
//		// not an image
//	}
package thumbnail
