package binder

import "net/http"

// Query binds URL query parameters to fields tagged `query:"name"`.
// Absent parameters leave the field untouched; pointer fields distinguish
// "absent" from "zero".
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
