package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/metrics"
	"github.com/crucial707/blog-api/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Tokens   *auth.Issuer
}

// ==========================
// Login (HTTP Basic auth: name/password)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	name, password, ok := r.BasicAuth()
	if !ok || name == "" || password == "" {
		loginRequired(w)
		return
	}

	user, err := h.UserRepo.GetByName(r.Context(), name)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		slog.Error("login lookup", "name", name, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if err != nil || !auth.CheckPassword(password, user.PasswordHash) {
		metrics.IncLogin("failure")
		loginRequired(w)
		return
	}

	token, err := h.Tokens.Issue(user.PublicID)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	metrics.IncLogin("success")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func loginRequired(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Login required!"`)
	JSONError(w, "could not verify", http.StatusUnauthorized)
}
