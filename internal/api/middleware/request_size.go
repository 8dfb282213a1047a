package middleware

import (
	"net/http"
)

// DefaultMaxBodySize is 1MB, enough for any event or participant payload.
const DefaultMaxBodySize int64 = 1 << 20

// RequestSize wraps the request body with http.MaxBytesReader so reads
// past maxBytes fail and the connection is closed.
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

			next.ServeHTTP(w, r)
		})
	}
}

// PublicRequestSize applies the default 1MB limit.
func PublicRequestSize() func(http.Handler) http.Handler {
	return RequestSize(DefaultMaxBodySize)
}
