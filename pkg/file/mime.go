package file

import (
	"bufio"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen matches the read limit mimetype uses for detection.
const sniffLen = 3072

// ContentType resolves the MIME type for name, looking at the extension first
// and sniffing head when the extension is unknown.
func ContentType(name string, head []byte) string {
	if ext := filepath.Ext(name); ext != "" {
		if ct := mime.TypeByExtension(strings.ToLower(ext)); ct != "" {
			return ct
		}
	}
	return mimetype.Detect(head).String()
}

// DetectContentType peeks at r to resolve the MIME type for name and returns a
// reader that still yields the full content.
func DetectContentType(name string, r io.Reader) (string, io.Reader) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, _ := br.Peek(sniffLen)
	return ContentType(name, head), br
}
