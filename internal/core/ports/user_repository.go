package ports

import (
	"context"

	"github.com/qualiextra/accounts-api/internal/core/domain"
)

// UserUpdate carries the profile fields a caller may change. Nil fields are
// left untouched. Role and password are deliberately absent: neither is
// writable through the profile path.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// UserRepository is the user directory. Implementations own uniqueness of
// email: Create must return domain.ErrEmailTaken when the insert loses a race
// against a concurrent registration.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByVerificationToken matches the token against unverified users only.
	FindByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	FindFirstByRole(ctx context.Context, role string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, fields UserUpdate) (*domain.User, error)
	// MarkVerified flips is_email_verified and clears the stored token.
	MarkVerified(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
}
