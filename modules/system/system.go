// Package system serves the unauthenticated health and statistics routes.
package system

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/filesmanager/handler"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Counter reports record totals.
type Counter interface {
	CountUsers(ctx context.Context) (int64, error)
	CountFiles(ctx context.Context) (int64, error)
}

type Module struct {
	redis        Check
	db           Check
	counter      Counter
	errorHandler handler.ErrorHandler[handler.Context]
}

type Option func(*Module)

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(m *Module) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

func New(redis, db Check, counter Counter, opts ...Option) *Module {
	m := &Module{
		redis:        redis,
		db:           db,
		counter:      counter,
		errorHandler: handler.NewErrorHandler(nil),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Routes registers GET /status and GET /stats.
func (m *Module) Routes(r chi.Router) {
	r.Get("/status", handler.Wrap(m.status,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))
	r.Get("/stats", handler.Wrap(m.stats,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))
}

type statusResponse struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

func (m *Module) status(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(statusResponse{
		Redis: alive(ctx, m.redis),
		DB:    alive(ctx, m.db),
	})
}

func alive(ctx context.Context, check Check) bool {
	return check != nil && check(ctx) == nil
}

type statsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

func (m *Module) stats(ctx handler.Context, _ struct{}) handler.Response {
	users, err := m.counter.CountUsers(ctx)
	if err != nil {
		return handler.Error(fmt.Errorf("count users: %w", err))
	}
	files, err := m.counter.CountFiles(ctx)
	if err != nil {
		return handler.Error(fmt.Errorf("count files: %w", err))
	}
	return handler.JSON(statsResponse{Users: users, Files: files})
}
