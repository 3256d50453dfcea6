package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/repo"
	"github.com/google/uuid"
)

// ensureAdmin creates the bootstrap admin, or promotes an existing user with
// that name. User creation is admin-only, so a fresh database needs one.
func ensureAdmin(ctx context.Context, users *repo.UserRepo, name, password string) error {
	if name == "" || password == "" {
		return nil
	}

	existing, err := users.GetByName(ctx, name)
	switch {
	case err == nil:
		if existing.Admin {
			return nil
		}
		if _, err := users.Promote(ctx, existing.PublicID); err != nil {
			return fmt.Errorf("promote bootstrap admin: %w", err)
		}
		slog.Info("bootstrap admin promoted", "name", name)
		return nil
	case !errors.Is(err, repo.ErrNotFound):
		return fmt.Errorf("lookup bootstrap admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}
	user, err := users.Create(ctx, uuid.NewString(), name, hash)
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	if _, err := users.Promote(ctx, user.PublicID); err != nil {
		return fmt.Errorf("promote bootstrap admin: %w", err)
	}
	slog.Info("bootstrap admin created", "name", name, "public_id", user.PublicID)
	return nil
}
