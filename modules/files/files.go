// Package files serves the file and folder routes.
package files

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/filesmanager/binder"
	"github.com/dmitrymomot/filesmanager/handler"
	"github.com/dmitrymomot/filesmanager/pkg/session"
	filesvc "github.com/dmitrymomot/filesmanager/svc/files"
)

// Service is the file behaviour the routes expose; *filesvc.Service
// implements it.
type Service interface {
	Create(ctx context.Context, userID string, p filesvc.CreateParams) (filesvc.File, error)
	Get(ctx context.Context, userID, id string) (filesvc.File, error)
	List(ctx context.Context, userID string, parent *filesvc.ParentID, page int) ([]filesvc.File, error)
	SetVisibility(ctx context.Context, userID, id string, isPublic bool) (filesvc.File, error)
	ReadContent(ctx context.Context, userID, id string, width int) (*filesvc.Content, error)
}

type Module struct {
	svc          Service
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

// Routes registers the /files endpoints. Content is readable anonymously;
// everything else requires a session.
func (m *Module) Routes(r chi.Router) {
	r.Get("/files/{id}/data", handler.Wrap(m.data,
		handler.WithBinders[handler.Context, dataRequest](binder.Path(chi.URLParam), binder.Query()),
		handler.WithErrorHandler[handler.Context, dataRequest](m.errorHandler),
	))

	r.Group(func(r chi.Router) {
		r.Use(session.RequireIdentity(m.unauthorized()))

		r.Post("/files", handler.Wrap(m.create,
			handler.WithBinders[handler.Context, createRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, createRequest](m.errorHandler),
		))
		r.Get("/files", handler.Wrap(m.list,
			handler.WithBinders[handler.Context, listRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, listRequest](m.errorHandler),
		))
		r.Get("/files/{id}", handler.Wrap(m.get,
			handler.WithBinders[handler.Context, idRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, idRequest](m.errorHandler),
		))
		r.Put("/files/{id}/publish", handler.Wrap(m.visibility(true),
			handler.WithBinders[handler.Context, idRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, idRequest](m.errorHandler),
		))
		r.Put("/files/{id}/unpublish", handler.Wrap(m.visibility(false),
			handler.WithBinders[handler.Context, idRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, idRequest](m.errorHandler),
		))
	})
}

func (m *Module) unauthorized() http.Handler {
	return handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrUnauthorized)
	}, handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler))
}

type createRequest struct {
	Name     *string          `json:"name"`
	Type     *string          `json:"type"`
	ParentID filesvc.ParentID `json:"parentId"`
	IsPublic bool             `json:"isPublic"`
	Data     *string          `json:"data"`
}

func (m *Module) create(ctx handler.Context, req createRequest) handler.Response {
	f, err := m.svc.Create(ctx, session.UserIDFromContext(ctx), filesvc.CreateParams{
		Name:     deref(req.Name),
		Type:     deref(req.Type),
		ParentID: req.ParentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		return mapError(err)
	}
	return handler.JSON(f, handler.WithJSONStatus(http.StatusCreated))
}

type idRequest struct {
	ID string `path:"id"`
}

func (m *Module) get(ctx handler.Context, req idRequest) handler.Response {
	f, err := m.svc.Get(ctx, session.UserIDFromContext(ctx), req.ID)
	if err != nil {
		return mapError(err)
	}
	return handler.JSON(f)
}

// Page is bound as text: anything that is not an integer means the first
// page.
type listRequest struct {
	ParentID *string `query:"parentId"`
	Page     string  `query:"page"`
}

func (m *Module) list(ctx handler.Context, req listRequest) handler.Response {
	var parent *filesvc.ParentID
	if req.ParentID != nil {
		p := filesvc.ParseParentID(*req.ParentID)
		parent = &p
	}
	page, _ := strconv.Atoi(req.Page)

	list, err := m.svc.List(ctx, session.UserIDFromContext(ctx), parent, page)
	if err != nil {
		return mapError(err)
	}
	return handler.JSON(list)
}

func (m *Module) visibility(isPublic bool) handler.HandlerFunc[handler.Context, idRequest] {
	return func(ctx handler.Context, req idRequest) handler.Response {
		f, err := m.svc.SetVisibility(ctx, session.UserIDFromContext(ctx), req.ID, isPublic)
		if err != nil {
			return mapError(err)
		}
		return handler.JSON(f)
	}
}

type dataRequest struct {
	ID   string `path:"id"`
	Size *int   `query:"size"`
}

func (m *Module) data(ctx handler.Context, req dataRequest) handler.Response {
	width := 0
	if req.Size != nil {
		if *req.Size <= 0 {
			return handler.Error(handler.ErrNotFound)
		}
		width = *req.Size
	}

	c, err := m.svc.ReadContent(ctx, session.UserIDFromContext(ctx), req.ID, width)
	if err != nil {
		return mapError(err)
	}
	return handler.Stream(c.Body, c.ContentType, handler.WithContentLength(c.Size))
}

func mapError(err error) handler.Response {
	var missing filesvc.MissingFieldError
	switch {
	case errors.As(err, &missing):
		return badRequest(missing.Error(), err)
	case errors.Is(err, filesvc.ErrInvalidData):
		return badRequest("Invalid data", err)
	case errors.Is(err, filesvc.ErrInvalidParent):
		return badRequest("Parent not found", err)
	case errors.Is(err, filesvc.ErrParentNotFolder):
		return badRequest("Parent is not a folder", err)
	case errors.Is(err, filesvc.ErrFolderHasNoContent):
		return badRequest("A folder doesn't have content", err)
	case errors.Is(err, filesvc.ErrUnauthorized):
		return handler.Error(errors.Join(handler.ErrUnauthorized, err))
	case errors.Is(err, filesvc.ErrNotFound):
		return handler.Error(errors.Join(handler.ErrNotFound, err))
	}
	return handler.Error(err)
}

func badRequest(message string, err error) handler.Response {
	return handler.Error(errors.Join(handler.NewHTTPError(http.StatusBadRequest, message), err))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
