// Package file stores opaque content blobs on the local filesystem or in S3.
//
// Both backends implement Storage over slash separated keys. Keys are cleaned
// and rejected if they could escape the storage root. The local backend
// writes through a temporary file and a rename, so overwriting a key is
// atomic for concurrent readers.
//
// ContentType and DetectContentType resolve a MIME type from a file name,
// falling back to content sniffing with github.com/gabriel-vasile/mimetype.
package file
