package auth

import "net/http"

// parseBasic extracts the credential from an HTTP Basic Authorization
// header. The password is everything after the first colon.
func parseBasic(header string) (email, password string, ok bool) {
	r := http.Request{Header: http.Header{"Authorization": {header}}}
	return r.BasicAuth()
}
