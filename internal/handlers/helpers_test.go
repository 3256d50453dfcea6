package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/blog-api/internal/middleware"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/go-chi/chi/v5"
)

var (
	userCols = []string{"id", "public_id", "name", "password_hash", "admin"}
	blogCols = []string{"id", "author", "title", "content", "tag"}
)

// requestWithChiURLParams builds a request with chi URL params set so handlers can read them.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return r
}

// asUser attaches user as the authenticated principal.
func asUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(middleware.WithPrincipal(r.Context(), user))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}
