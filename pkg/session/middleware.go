package session

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/filesmanager/pkg/logger"
)

// Middleware resolves the request token, if any, and stores the identity in
// the request context. It never rejects a request: handlers decide whether
// an anonymous caller is acceptable. Store failures are logged and the
// request continues anonymously.
func (m *Manager) Middleware(transport Transport) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := transport.GetToken(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := m.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, ErrSessionNotFound) {
					m.logger.ErrorContext(r.Context(), "session lookup failed", logger.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), token, userID)))
		})
	}
}

// RequireIdentity serves reject for requests Middleware left anonymous.
func RequireIdentity(reject http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				reject.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
