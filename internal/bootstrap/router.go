package bootstrap

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/filesmanager/handler"
	"github.com/dmitrymomot/filesmanager/modules/account"
	"github.com/dmitrymomot/filesmanager/modules/files"
	"github.com/dmitrymomot/filesmanager/modules/system"
	"github.com/dmitrymomot/filesmanager/pkg/ratelimiter"
	"github.com/dmitrymomot/filesmanager/pkg/requestid"
	"github.com/dmitrymomot/filesmanager/pkg/session"
)

// Router mounts every HTTP module behind the request id, client address,
// recovery and session middleware.
func (a *App) Router() http.Handler {
	errorHandler := handler.NewErrorHandler(a.Logger)
	transport := session.NewHeaderTransport(a.Sessions.Config().HeaderName)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		a.ClientIP.Middleware,
		middleware.Recoverer,
		a.Sessions.Middleware(transport),
	)

	r.NotFound(handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}, handler.WithErrorHandler[handler.Context, struct{}](errorHandler)))

	system.New(a.RedisCheck, a.DBCheck, a.Store, system.WithErrorHandler(errorHandler)).Routes(r)
	accountOpts := []account.Option{account.WithErrorHandler(errorHandler)}
	if a.LoginLimiter != nil {
		reject := handler.Wrap(func(handler.Context, struct{}) handler.Response {
			return handler.Error(handler.ErrTooManyRequests)
		}, handler.WithErrorHandler[handler.Context, struct{}](errorHandler))
		accountOpts = append(accountOpts, account.WithLoginLimiter(
			ratelimiter.Middleware(a.LoginLimiter, ratelimiter.ByClientIP, reject),
		))
	}
	account.New(a.Auth, accountOpts...).Routes(r)
	files.New(a.Files, files.WithErrorHandler(errorHandler)).Routes(r)

	return r
}
