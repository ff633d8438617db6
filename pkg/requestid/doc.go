// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware accepts a client supplied X-Request-ID when it is short and made
// of safe characters, otherwise it generates a UUIDv4. The id is available via
// FromContext and is added to log records by LogExtractor.
package requestid
