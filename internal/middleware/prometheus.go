package middleware

import (
	"net/http"
	"time"

	"github.com/crucial707/blog-api/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// Prometheus records request duration and count, labelled by the chi route
// pattern. Requests that match no route share metrics.UnmatchedPath so raw
// paths never become label values.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		if r.URL.Path == "/metrics" {
			return
		}
		metrics.RecordRequest(r.Method, routeLabel(r), rw.status, time.Since(start).Seconds())
	})
}

func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return metrics.UnmatchedPath
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return metrics.UnmatchedPath
}
