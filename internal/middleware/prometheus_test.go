package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/blog-api/internal/metrics"
	"github.com/go-chi/chi/v5"
)

func TestRouteLabel(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			got = routeLabel(req)
		})
	})
	r.Get("/blog/{id}", func(w http.ResponseWriter, req *http.Request) {})

	tests := []struct {
		path string
		want string
	}{
		{"/blog/42", "/blog/{id}"},
		{"/no/such/route/8f14e45f", metrics.UnmatchedPath},
		{"/wp-admin.php", metrics.UnmatchedPath},
	}
	for _, tt := range tests {
		got = ""
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, nil))
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRouteLabel_NoRouter(t *testing.T) {
	if got := routeLabel(httptest.NewRequest("GET", "/anything", nil)); got != metrics.UnmatchedPath {
		t.Errorf("got %q, want %q", got, metrics.UnmatchedPath)
	}
}
