// Package files owns file and folder records, their content and the
// thumbnail pipeline.
//
// Every operation is scoped to the calling user: records owned by somebody
// else are reported as ErrNotFound, the same as records that do not exist.
// The one exception is ReadContent, which serves public files to anyone.
//
// Uploaded images are resized in the background. Create enqueues a
// ThumbnailJob and ThumbnailProcessor writes one variant per entry in
// Widths next to the original blob.
package files
