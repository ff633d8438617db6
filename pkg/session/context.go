package session

import "context"

type sessionContextKey struct{}

type contextValue struct {
	token  string
	userID string
}

// WithIdentity stores a resolved token and its user in ctx.
func WithIdentity(ctx context.Context, token, userID string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, contextValue{token: token, userID: userID})
}

// UserIDFromContext returns the authenticated user id, or "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(sessionContextKey{}).(contextValue)
	return v.userID
}

// TokenFromContext returns the resolved token, or "".
func TokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(sessionContextKey{}).(contextValue)
	return v.token
}
