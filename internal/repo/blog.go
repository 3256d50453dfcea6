package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/blog-api/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type BlogRepo struct {
	DB *sql.DB
}

func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{DB: db}
}

// tag is nullable in the table; an empty tag is stored as NULL and read back as "".
const blogColumns = `id, author, title, content, COALESCE(tag, '')`

func nullableTag(tag string) sql.NullString {
	return sql.NullString{String: tag, Valid: tag != ""}
}

func scanBlogs(rows *sql.Rows) ([]models.Blog, error) {
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		var b models.Blog
		if err := rows.Scan(&b.ID, &b.Author, &b.Title, &b.Content, &b.Tag); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// ========================
// CREATE BLOG
// ========================

func (r *BlogRepo) Create(ctx context.Context, author, title, content, tag string) (models.Blog, error) {
	var blog models.Blog
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO blogs (author, title, content, tag)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+blogColumns,
		author, title, content, nullableTag(tag),
	).Scan(
		&blog.ID,
		&blog.Author,
		&blog.Title,
		&blog.Content,
		&blog.Tag,
	)
	return blog, mapErr(err)
}

// ========================
// GET BLOG BY ID
// ========================

func (r *BlogRepo) GetByID(ctx context.Context, id int) (models.Blog, error) {
	var blog models.Blog
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`,
		id,
	).Scan(
		&blog.ID,
		&blog.Author,
		&blog.Title,
		&blog.Content,
		&blog.Tag,
	)
	return blog, mapErr(err)
}

// ========================
// LIST ALL BLOGS
// ========================

func (r *BlogRepo) List(ctx context.Context) ([]models.Blog, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+blogColumns+` FROM blogs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanBlogs(rows)
}

// ========================
// LIST BLOGS BY AUTHOR
// ========================

func (r *BlogRepo) ListByAuthor(ctx context.Context, author string) ([]models.Blog, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE author = $1 ORDER BY id`,
		author,
	)
	if err != nil {
		return nil, err
	}
	return scanBlogs(rows)
}

// ========================
// UPDATE BLOG BY ID
// ========================

// Update overwrites every mutable field. Callers merge partial input first.
func (r *BlogRepo) Update(ctx context.Context, blog models.Blog) (models.Blog, error) {
	var out models.Blog
	err := r.DB.QueryRowContext(ctx,
		`UPDATE blogs
		 SET title = $1, content = $2, tag = $3
		 WHERE id = $4
		 RETURNING `+blogColumns,
		blog.Title, blog.Content, nullableTag(blog.Tag), blog.ID,
	).Scan(
		&out.ID,
		&out.Author,
		&out.Title,
		&out.Content,
		&out.Tag,
	)
	return out, mapErr(err)
}

// ========================
// DELETE BLOG BY ID
// ========================

func (r *BlogRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM blogs WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
