// Package binder fills request structs from the parts of an HTTP request.
//
// Each binder is a func(*http.Request, any) error and is meant to be passed
// to handler.WithBinders; they run in order and each only touches the fields
// it owns:
//
//	type getFileRequest struct {
//		ID   string `path:"id"`
//		Size *int   `query:"size"`
//	}
//
//	handler.WithBinders[handler.Context, getFileRequest](
//		binder.Path(chi.URLParam),
//		binder.Query(),
//	)
//
// JSON decodes the body using the struct's json tags. Query and Path support
// strings, integers, floats, bools, slices of those and pointers for optional
// values. Failures wrap one of the package sentinels so the error handler can
// map them to a status code.
package binder
