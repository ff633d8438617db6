package handler

import (
	"io"
	"net/http"
	"strconv"
)

type streamResponse struct {
	body        io.ReadCloser
	contentType string
	size        int64
}

// StreamOption configures a Stream response.
type StreamOption func(*streamResponse)

// WithContentLength sets Content-Length when the size is known up front.
func WithContentLength(n int64) StreamOption {
	return func(s *streamResponse) {
		s.size = n
	}
}

// Stream copies body to the client and closes it.
func Stream(body io.ReadCloser, contentType string, opts ...StreamOption) Response {
	s := &streamResponse{body: body, contentType: contentType, size: -1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *streamResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	defer s.body.Close()

	if s.contentType == "" {
		s.contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", s.contentType)
	if s.size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(s.size, 10))
	}
	w.WriteHeader(http.StatusOK)

	// Headers are gone by the time a copy error surfaces, so it is not
	// reported to the error handler.
	_, _ = io.Copy(w, s.body)
	return nil
}
