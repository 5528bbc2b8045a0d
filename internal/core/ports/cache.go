package ports

import (
	"context"

	"github.com/qualiextra/accounts-api/internal/core/domain"
)

// UserCache is a best-effort read cache over the directory. Implementations
// must fail safe: a backend error behaves like a miss and never surfaces to
// callers.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, bool)
	Set(ctx context.Context, user *domain.User)
	Invalidate(ctx context.Context, id string)
}
