package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/metrics"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/crucial707/blog-api/internal/repo"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type key string

const principalKey key = "principal"

// TokenValidator validates a raw token string.
type TokenValidator interface {
	Validate(token string) auth.Result
}

// PrincipalStore resolves a token's public id to a user.
type PrincipalStore interface {
	GetByPublicID(ctx context.Context, publicID string) (*models.User, error)
}

// Error messages returned by the gate.
const (
	MsgTokenMissing = "token is missing"
	MsgTokenInvalid = "token is invalid"
	MsgForbidden    = "cannot perform that function"
)

// WithPrincipal returns a copy of ctx carrying user.
func WithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

// CurrentUser returns the authenticated user attached by Authenticate.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(principalKey).(*models.User)
	return u, ok && u != nil
}

// Authenticate reads the token from header, validates it, resolves the
// principal and attaches it to the request context. A token whose principal
// no longer exists is rejected like any other invalid token.
func Authenticate(header string, tokens TokenValidator, users PrincipalStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(header))
			if raw == "" {
				reject(r, "missing")
				writeJSONError(w, MsgTokenMissing, http.StatusUnauthorized)
				return
			}

			res := tokens.Validate(raw)
			if !res.OK() {
				reject(r, res.Status.String())
				writeJSONError(w, MsgTokenInvalid, http.StatusUnauthorized)
				return
			}

			user, err := users.GetByPublicID(r.Context(), res.PublicID)
			if errors.Is(err, repo.ErrNotFound) {
				reject(r, "unknown_principal")
				writeJSONError(w, MsgTokenInvalid, http.StatusUnauthorized)
				return
			}
			if err != nil {
				slog.Error("resolve principal",
					"request_id", chimw.GetReqID(r.Context()),
					"error", err)
				writeJSONError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			notePrincipal(r.Context(), user.PublicID)
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), user)))
		})
	}
}

// RequireAdmin rejects requests whose principal is not an admin. It must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok {
			writeJSONError(w, MsgTokenInvalid, http.StatusUnauthorized)
			return
		}
		if !user.Admin {
			writeJSONError(w, MsgForbidden, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func reject(r *http.Request, reason string) {
	metrics.IncTokenRejection(reason)
	slog.Warn("token rejected",
		"request_id", chimw.GetReqID(r.Context()),
		"path", r.URL.Path,
		"reason", reason)
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
