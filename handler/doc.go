// Package handler turns typed request handlers into http.HandlerFuncs.
//
// A HandlerFunc receives a Context and a request struct filled by the
// configured binders and returns a Response. Wrap runs the binders, applies
// decorators and renders the response; any error raised along the way goes
// to the ErrorHandler, which maps it to a status code and writes
// {"error": "<message>"}.
//
// Domain code reports client-facing failures as HTTPError values, usually
// joined with the underlying cause so the log keeps the detail:
//
//	return handler.Error(errors.Join(handler.ErrNotFound, err))
//
// Responses: JSON and JSONError for bodies, Empty for 204, Stream for file
// content.
package handler
