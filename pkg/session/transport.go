package session

import (
	"net/http"
	"strings"
)

// Transport extracts the session token from a request.
type Transport interface {
	GetToken(r *http.Request) (string, error)
}

// HeaderTransport reads the token from a request header.
type HeaderTransport struct {
	headerName string
	prefix     string
}

type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix strips prefix (e.g. "Bearer ") from the header value.
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// NewHeaderTransport reads the raw header value unless a prefix is configured.
func NewHeaderTransport(headerName string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{headerName: headerName}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := strings.TrimSpace(r.Header.Get(t.headerName))
	if t.prefix != "" {
		value = strings.TrimPrefix(value, t.prefix)
	}
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}
