package main

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/blog-api/internal/repo"
)

func TestEnsureAdmin_Creates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE name = \$1`).WithArgs("root").WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "root", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "pub-root", "root", "h", false))
	mock.ExpectQuery(`UPDATE users`).
		WithArgs("pub-root").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "pub-root", "root", "h", true))

	if err := ensureAdmin(context.Background(), repo.NewUserRepo(db), "root", "pw"); err != nil {
		t.Fatalf("ensureAdmin: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEnsureAdmin_ExistingAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE name = \$1`).
		WithArgs("root").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "pub-root", "root", "h", true))

	if err := ensureAdmin(context.Background(), repo.NewUserRepo(db), "root", "pw"); err != nil {
		t.Fatalf("ensureAdmin: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEnsureAdmin_Disabled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	if err := ensureAdmin(context.Background(), repo.NewUserRepo(db), "", ""); err != nil {
		t.Fatalf("ensureAdmin: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
