package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/blog-api/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, public_id, name, password_hash, admin`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	if err := row.Scan(&user.ID, &user.PublicID, &user.Name, &user.PasswordHash, &user.Admin); err != nil {
		return nil, mapErr(err)
	}
	return user, nil
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, publicID, name, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (public_id, name, password_hash, admin)
		VALUES ($1, $2, $3, FALSE)
		RETURNING ` + userColumns

	return scanUser(r.DB.QueryRowContext(ctx, query, publicID, name, passwordHash))
}

// ==========================
// Get By Public ID
// ==========================
func (r *UserRepo) GetByPublicID(ctx context.Context, publicID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE public_id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, publicID))
}

// ==========================
// Get By Name
// ==========================
func (r *UserRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, name))
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Promote sets the admin flag. Promoting an admin again is a no-op success.
func (r *UserRepo) Promote(ctx context.Context, publicID string) (*models.User, error) {
	query := `
		UPDATE users
		SET admin = TRUE
		WHERE public_id = $1
		RETURNING ` + userColumns

	return scanUser(r.DB.QueryRowContext(ctx, query, publicID))
}

// ==========================
// Delete User
// ==========================
func (r *UserRepo) Delete(ctx context.Context, publicID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE public_id = $1`, publicID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
