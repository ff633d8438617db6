// Package account serves registration, login and logout.
package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/filesmanager/binder"
	"github.com/dmitrymomot/filesmanager/handler"
	"github.com/dmitrymomot/filesmanager/pkg/session"
	"github.com/dmitrymomot/filesmanager/svc/auth"
)

// Service is the account behaviour the routes expose; *auth.Service
// implements it.
type Service interface {
	Register(ctx context.Context, email, password string) (*auth.User, error)
	Login(ctx context.Context, authorization string) (string, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID string) (*auth.User, error)
}

type Module struct {
	svc          Service
	errorHandler handler.ErrorHandler[handler.Context]
	loginLimit   func(http.Handler) http.Handler
}

type Option func(*Module)

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(m *Module) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithLoginLimiter wraps GET /connect, typically with ratelimiter.Middleware.
func WithLoginLimiter(mw func(http.Handler) http.Handler) Option {
	return func(m *Module) {
		m.loginLimit = mw
	}
}

func New(svc Service, opts ...Option) *Module {
	m := &Module{
		svc:          svc,
		errorHandler: handler.NewErrorHandler(nil),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Routes registers the account endpoints. The session middleware must
// already be installed on r.
func (m *Module) Routes(r chi.Router) {
	r.Post("/users", handler.Wrap(m.register,
		handler.WithBinders[handler.Context, registerRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, registerRequest](m.errorHandler),
	))
	connect := r
	if m.loginLimit != nil {
		connect = r.With(m.loginLimit)
	}
	connect.Get("/connect", handler.Wrap(m.connect,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))

	r.Group(func(r chi.Router) {
		r.Use(session.RequireIdentity(m.unauthorized()))
		r.Get("/disconnect", handler.Wrap(m.disconnect,
			handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
		))
		r.Get("/users/me", handler.Wrap(m.me,
			handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
		))
	})
}

func (m *Module) unauthorized() http.Handler {
	return handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrUnauthorized)
	}, handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler))
}

type registerRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (m *Module) register(ctx handler.Context, req registerRequest) handler.Response {
	u, err := m.svc.Register(ctx, deref(req.Email), deref(req.Password))
	if err != nil {
		return mapError(err)
	}
	return handler.JSON(u, handler.WithJSONStatus(http.StatusCreated))
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (m *Module) connect(ctx handler.Context, _ struct{}) handler.Response {
	token, err := m.svc.Login(ctx, ctx.Request().Header.Get("Authorization"))
	if err != nil {
		return mapError(err)
	}
	return handler.JSON(tokenResponse{Token: token})
}

func (m *Module) disconnect(ctx handler.Context, _ struct{}) handler.Response {
	if err := m.svc.Logout(ctx, session.TokenFromContext(ctx)); err != nil {
		return mapError(err)
	}
	return handler.Empty()
}

func (m *Module) me(ctx handler.Context, _ struct{}) handler.Response {
	u, err := m.svc.Me(ctx, session.UserIDFromContext(ctx))
	if err != nil {
		return mapError(err)
	}
	return handler.JSON(u)
}

func mapError(err error) handler.Response {
	var missing auth.MissingFieldError
	switch {
	case errors.As(err, &missing):
		return handler.Error(errors.Join(handler.NewHTTPError(http.StatusBadRequest, missing.Error()), err))
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return handler.Error(errors.Join(handler.NewHTTPError(http.StatusBadRequest, "Already exists"), err))
	case errors.Is(err, auth.ErrUnauthorized):
		return handler.Error(errors.Join(handler.ErrUnauthorized, err))
	}
	return handler.Error(err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
