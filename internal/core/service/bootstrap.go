package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/qualiextra/accounts-api/internal/core/domain"
	"github.com/qualiextra/accounts-api/internal/core/ports"
)

// EnsureDefaultAdmin seeds a verified administrator account on first startup.
// Idempotent: a no-op when any administrator already exists.
func EnsureDefaultAdmin(ctx context.Context, repo ports.UserRepository, email, password string, logger zerolog.Logger) error {
	existing, err := repo.FindFirstByRole(ctx, domain.RoleAdmin)
	if err == nil {
		logger.Debug().Str("email", existing.Email).Msg("administrator already present, skipping seed")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := &domain.User{
		ID:              uuid.NewString(),
		FirstName:       "Admin",
		LastName:        "Qualiextra",
		Email:           email,
		PasswordHash:    hash,
		Role:            domain.RoleAdmin,
		IsEmailVerified: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := repo.Create(ctx, admin); err != nil {
		// Another instance may have seeded concurrently.
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil
		}
		return err
	}

	logger.Info().Str("email", email).Msg("default administrator created")
	return nil
}
