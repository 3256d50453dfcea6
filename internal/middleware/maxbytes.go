package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes caps blog and user payloads (64 KiB).
const DefaultMaxBodyBytes = 64 << 10

// MaxBytes limits the body of POST and PUT requests. Reads past the limit fail,
// which the JSON decoders in handlers surface as a 400.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
