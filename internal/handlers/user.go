package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ==========================
// UserHandler
// ==========================
// All routes are admin-only; the router wraps them in middleware.RequireAdmin.
type UserHandler struct {
	Repo *repo.UserRepo
}

// ==========================
// Create User
// ==========================
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name" validate:"required,max=80"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := validationFields(input); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		slog.Error("hash password", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Repo.Create(r.Context(), uuid.NewString(), input.Name, hash)
	if errors.Is(err, repo.ErrDuplicate) {
		JSONError(w, "user already exists", http.StatusConflict)
		return
	}
	if err != nil {
		slog.Error("create user", "name", input.Name, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":   "new user created",
		"public_id": user.PublicID,
	})
}

// ==========================
// List Users
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("list users", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// ==========================
// Get User
// ==========================
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Repo.GetByPublicID(r.Context(), chi.URLParam(r, "public_id"))
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "no user found", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ==========================
// Promote User
// ==========================
func (h *UserHandler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "public_id")

	_, err := h.Repo.Promote(r.Context(), publicID)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "no user found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("promote user", "public_id", publicID, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSONMessage(w, "user has been promoted", http.StatusOK)
}

// ==========================
// Delete User
// ==========================
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "public_id")

	err := h.Repo.Delete(r.Context(), publicID)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "no user found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("delete user", "public_id", publicID, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSONMessage(w, "user has been deleted", http.StatusOK)
}
