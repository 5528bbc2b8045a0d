package ports

import (
	"context"

	"github.com/qualiextra/accounts-api/internal/core/domain"
)

// RegisterResult is returned on successful registration. The account starts
// unverified; the caller must follow the emailed verification link.
type RegisterResult struct {
	Message string
	UserID  string
}

type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
}
