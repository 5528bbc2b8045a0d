package ports

import (
	"context"

	"github.com/qualiextra/accounts-api/internal/core/domain"
)

type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, fields UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
