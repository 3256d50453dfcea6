package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const logFieldsKey key = "log_fields"

// logFields is filled in by inner middleware and read once the request ends.
type logFields struct {
	principal string
}

// notePrincipal records publicID on the request's log line, if RequestLog is installed.
func notePrincipal(ctx context.Context, publicID string) {
	if f, ok := ctx.Value(logFieldsKey).(*logFields); ok {
		f.principal = publicID
	}
}

// responseWriter captures status and body size.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// RequestLog emits one line per request. principal is the public id the gate
// resolved, empty for unauthenticated routes and rejected tokens. Install it
// after RequestID and before Authenticate.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		fields := &logFields{}
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), logFieldsKey, fields)))

		slog.Info("request",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"principal", fields.principal,
			"status", rw.status,
			"bytes", rw.size,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
