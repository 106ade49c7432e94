package database

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

// EnsureAdmin creates an admin account with the given credentials unless a
// user with that email already exists.
func EnsureAdmin(ctx context.Context, users *UserStore, name, email, passwordHash string) error {
	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	zap.L().Info("Seeded admin account", zap.String("email", admin.Email))
	return nil
}
