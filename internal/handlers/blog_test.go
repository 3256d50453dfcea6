package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/crucial707/blog-api/internal/repo"
)

var (
	alice = &models.User{ID: 1, PublicID: "pub-alice", Name: "alice"}
	bob   = &models.User{ID: 2, PublicID: "pub-bob", Name: "bob"}
)

func newBlogHandler(t *testing.T) (*BlogHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &BlogHandler{Repo: repo.NewBlogRepo(db), Users: repo.NewUserRepo(db)}
	return h, mock, func() { db.Close() }
}

func TestBlogHandler_CreateBlog(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	mock.ExpectQuery(`INSERT INTO blogs \(author, title, content, tag\)`).
		WithArgs("alice", "T", "C", nil).
		WillReturnRows(sqlmock.NewRows(blogCols).AddRow(10, "alice", "T", "C", ""))

	body, _ := json.Marshal(map[string]string{"title": "T", "content": "C"})
	rr := httptest.NewRecorder()
	h.CreateBlog(rr, asUser(requestWithChiURLParams("POST", "/blog", body, nil), alice))

	if rr.Code != http.StatusCreated {
		t.Fatalf("CreateBlog status: got %d, want 201", rr.Code)
	}
	var blog models.Blog
	if err := json.NewDecoder(rr.Body).Decode(&blog); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if blog.ID != 10 || blog.Author != "alice" || blog.Tag != "" {
		t.Errorf("unexpected blog: %+v", blog)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_CreateBlog_Validation(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}
	body, _ := json.Marshal(map[string]string{"title": string(long)})
	rr := httptest.NewRecorder()
	h.CreateBlog(rr, asUser(requestWithChiURLParams("POST", "/blog", body, nil), alice))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("CreateBlog status: got %d, want 400", rr.Code)
	}
	fields, _ := decodeError(t, rr)["fields"].(map[string]interface{})
	if fields["content"] != "required" || fields["title"] == nil {
		t.Errorf("unexpected fields: %v", fields)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_GetBlog(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, author, title, content, COALESCE\(tag, ''\) FROM blogs WHERE id = \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(blogCols).AddRow(10, "alice", "T", "C", ""))

	rr := httptest.NewRecorder()
	h.GetBlog(rr, asUser(requestWithChiURLParams("GET", "/blog/10", nil, map[string]string{"id": "10"}), bob))

	if rr.Code != http.StatusOK {
		t.Fatalf("GetBlog status: got %d, want 200", rr.Code)
	}
	var blog models.Blog
	if err := json.NewDecoder(rr.Body).Decode(&blog); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if blog.Title != "T" || blog.Content != "C" || blog.Tag != "" {
		t.Errorf("unexpected blog: %+v", blog)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_GetBlog_InvalidID(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	rr := httptest.NewRecorder()
	h.GetBlog(rr, requestWithChiURLParams("GET", "/blog/abc", nil, map[string]string{"id": "abc"}))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("GetBlog status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_ListBlogsByAuthor_NoAuthor(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, public_id, name, password_hash, admin FROM users WHERE name`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	rr := httptest.NewRecorder()
	h.ListBlogsByAuthor(rr, asUser(requestWithChiURLParams("GET", "/blogs/ghost", nil, map[string]string{"author": "ghost"}), alice))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
	if msg := decodeError(t, rr)["error"]; msg != "no author by that name" {
		t.Errorf("error: got %v", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_ListBlogsByAuthor_NoBlogs(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, public_id, name, password_hash, admin FROM users WHERE name`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(2, "pub-bob", "bob", "h", false))
	mock.ExpectQuery(`FROM blogs WHERE author = \$1`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(blogCols))

	rr := httptest.NewRecorder()
	h.ListBlogsByAuthor(rr, asUser(requestWithChiURLParams("GET", "/blogs/bob", nil, map[string]string{"author": "bob"}), alice))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
	if msg := decodeError(t, rr)["error"]; msg != "no blogs by this author" {
		t.Errorf("error: got %v", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_ListBlogsByAuthor(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, public_id, name, password_hash, admin FROM users WHERE name`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "pub-alice", "alice", "h", false))
	mock.ExpectQuery(`FROM blogs WHERE author = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(blogCols).AddRow(1, "alice", "a", "b", "go"))

	rr := httptest.NewRecorder()
	h.ListBlogsByAuthor(rr, asUser(requestWithChiURLParams("GET", "/blogs/alice", nil, map[string]string{"author": "alice"}), bob))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var blogs []models.Blog
	if err := json.NewDecoder(rr.Body).Decode(&blogs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(blogs) != 1 || blogs[0].Tag != "go" {
		t.Errorf("unexpected blogs: %+v", blogs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_UpdateBlog_NotOwner(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	mock.ExpectQuery(`FROM blogs WHERE id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(blogCols).AddRow(5, "bob", "T", "C", ""))

	body, _ := json.Marshal(map[string]string{"title": "hijacked"})
	rr := httptest.NewRecorder()
	h.UpdateBlog(rr, asUser(requestWithChiURLParams("PUT", "/blog/5", body, map[string]string{"id": "5"}), alice))

	if rr.Code != http.StatusForbidden {
		t.Errorf("UpdateBlog status: got %d, want 403", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_UpdateBlog_MergesAbsentFields(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	mock.ExpectQuery(`FROM blogs WHERE id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(blogCols).AddRow(5, "alice", "Old", "Body", "go"))
	mock.ExpectQuery(`UPDATE blogs`).
		WithArgs("New", "Body", "go", 5).
		WillReturnRows(sqlmock.NewRows(blogCols).AddRow(5, "alice", "New", "Body", "go"))

	body, _ := json.Marshal(map[string]string{"title": "New"})
	rr := httptest.NewRecorder()
	h.UpdateBlog(rr, asUser(requestWithChiURLParams("PUT", "/blog/5", body, map[string]string{"id": "5"}), alice))

	if rr.Code != http.StatusOK {
		t.Fatalf("UpdateBlog status: got %d, want 200", rr.Code)
	}
	var blog models.Blog
	if err := json.NewDecoder(rr.Body).Decode(&blog); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if blog.Title != "New" || blog.Content != "Body" || blog.Tag != "go" {
		t.Errorf("unexpected blog: %+v", blog)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_UpdateBlog_EmptyTitle(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	mock.ExpectQuery(`FROM blogs WHERE id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(blogCols).AddRow(5, "alice", "Old", "Body", ""))

	body, _ := json.Marshal(map[string]string{"title": ""})
	rr := httptest.NewRecorder()
	h.UpdateBlog(rr, asUser(requestWithChiURLParams("PUT", "/blog/5", body, map[string]string{"id": "5"}), alice))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("UpdateBlog status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_DeleteBlog(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	mock.ExpectQuery(`FROM blogs WHERE id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(blogCols).AddRow(5, "alice", "T", "C", ""))
	mock.ExpectExec(`DELETE FROM blogs WHERE id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rr := httptest.NewRecorder()
	h.DeleteBlog(rr, asUser(requestWithChiURLParams("DELETE", "/blog/5", nil, map[string]string{"id": "5"}), alice))

	if rr.Code != http.StatusOK {
		t.Errorf("DeleteBlog status: got %d, want 200", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_DeleteBlog_NotFound(t *testing.T) {
	h, mock, done := newBlogHandler(t)
	defer done()

	mock.ExpectQuery(`FROM blogs WHERE id = \$1`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(blogCols))

	rr := httptest.NewRecorder()
	h.DeleteBlog(rr, asUser(requestWithChiURLParams("DELETE", "/blog/404", nil, map[string]string{"id": "404"}), alice))

	if rr.Code != http.StatusNotFound {
		t.Errorf("DeleteBlog status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
