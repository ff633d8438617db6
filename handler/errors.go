package handler

import (
	"errors"
	"net/http"
)

var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError carries the status code and the message sent to the client.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest           = HTTPError{Code: http.StatusBadRequest, Key: "Bad request"}
	ErrUnauthorized         = HTTPError{Code: http.StatusUnauthorized, Key: "Unauthorized"}
	ErrNotFound             = HTTPError{Code: http.StatusNotFound, Key: "Not found"}
	ErrRequestTooLarge      = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "Request entity too large"}
	ErrTooManyRequests      = HTTPError{Code: http.StatusTooManyRequests, Key: "Too many requests"}
	ErrUnsupportedMediaType = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "Unsupported media type"}
	ErrInternalServerError  = HTTPError{Code: http.StatusInternalServerError, Key: "Internal server error"}
)
