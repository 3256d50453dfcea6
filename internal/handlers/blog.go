package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/blog-api/internal/metrics"
	"github.com/crucial707/blog-api/internal/middleware"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/crucial707/blog-api/internal/repo"
	"github.com/go-chi/chi/v5"
)

type BlogHandler struct {
	Repo  *repo.BlogRepo
	Users *repo.UserRepo
}

// blogFields holds the validated mutable fields of a blog.
type blogFields struct {
	Title   string `json:"title" validate:"required,max=50"`
	Content string `json:"content" validate:"required"`
	Tag     string `json:"tag" validate:"max=50"`
}

//
// ==========================
// Create Blog
// ==========================
//

func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		JSONError(w, middleware.MsgTokenInvalid, http.StatusUnauthorized)
		return
	}

	var input blogFields
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := validationFields(input); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	blog, err := h.Repo.Create(r.Context(), user.Name, input.Title, input.Content, input.Tag)
	if err != nil {
		slog.Error("create blog", "author", user.Name, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncBlogWrite("create")
	writeJSON(w, http.StatusCreated, blog)
}

//
// ==========================
// Get Blog By ID
// ==========================
//

func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, ok := h.loadBlog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

//
// ==========================
// List All Blogs (admin)
// ==========================
//

func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("list blogs", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

//
// ==========================
// List Blogs By Author
// ==========================
//

func (h *BlogHandler) ListBlogsByAuthor(w http.ResponseWriter, r *http.Request) {
	author := chi.URLParam(r, "author")

	_, err := h.Users.GetByName(r.Context(), author)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "no author by that name", http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	blogs, err := h.Repo.ListByAuthor(r.Context(), author)
	if err != nil {
		slog.Error("list blogs by author", "author", author, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if len(blogs) == 0 {
		JSONError(w, "no blogs by this author", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, blogs)
}

//
// ==========================
// Update Blog (owner only)
// ==========================
//

func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	blog, ok := h.loadOwnedBlog(w, r)
	if !ok {
		return
	}

	// Absent fields keep their stored value.
	var input struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
		Tag     *string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Title != nil {
		blog.Title = *input.Title
	}
	if input.Content != nil {
		blog.Content = *input.Content
	}
	if input.Tag != nil {
		blog.Tag = *input.Tag
	}

	merged := blogFields{Title: blog.Title, Content: blog.Content, Tag: blog.Tag}
	if fields := validationFields(merged); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	updated, err := h.Repo.Update(r.Context(), blog)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "no blog found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("update blog", "id", blog.ID, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncBlogWrite("update")
	writeJSON(w, http.StatusOK, updated)
}

//
// ==========================
// Delete Blog (owner only)
// ==========================
//

func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	blog, ok := h.loadOwnedBlog(w, r)
	if !ok {
		return
	}

	err := h.Repo.Delete(r.Context(), blog.ID)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "no blog found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("delete blog", "id", blog.ID, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncBlogWrite("delete")
	JSONMessage(w, "blog deleted", http.StatusOK)
}

// loadBlog parses {id} and fetches the blog, writing the error response on failure.
func (h *BlogHandler) loadBlog(w http.ResponseWriter, r *http.Request) (models.Blog, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid blog id", http.StatusBadRequest)
		return models.Blog{}, false
	}

	blog, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "no blog found", http.StatusNotFound)
		return models.Blog{}, false
	}
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return models.Blog{}, false
	}
	return blog, true
}

// loadOwnedBlog is loadBlog plus the check that the principal authored the blog.
func (h *BlogHandler) loadOwnedBlog(w http.ResponseWriter, r *http.Request) (models.Blog, bool) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		JSONError(w, middleware.MsgTokenInvalid, http.StatusUnauthorized)
		return models.Blog{}, false
	}

	blog, ok := h.loadBlog(w, r)
	if !ok {
		return models.Blog{}, false
	}
	if blog.Author != user.Name {
		JSONError(w, middleware.MsgForbidden, http.StatusForbidden)
		return models.Blog{}, false
	}
	return blog, true
}
