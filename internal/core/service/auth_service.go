package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/qualiextra/accounts-api/internal/auth"
	"github.com/qualiextra/accounts-api/internal/core/domain"
	"github.com/qualiextra/accounts-api/internal/core/ports"
)

// bcryptCost is fixed; lowering it would silently weaken every new hash.
const bcryptCost = 12

const registeredMessage = "Account created successfully. Please verify your email before logging in."
const verifiedMessage = "Email verified successfully! You can now log in."

// AuthService implements registration, login, and email verification.
type AuthService struct {
	repo     ports.UserRepository
	notifier ports.Notifier
	cache    ports.UserCache
	tokens   *auth.TokenService
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, notifier ports.Notifier, cache ports.UserCache, tokens *auth.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, notifier: notifier, cache: cache, tokens: tokens, logger: logger}
}

// Register creates an unverified account and emails the verification link.
// A mailer failure aborts the request but does not roll back the created
// record; the account stays unverified with its token intact.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*ports.RegisterResult, error) {
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	// Pre-check for a friendly conflict answer. The unique constraint in the
	// directory remains the authority when two registrations race.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	verificationToken := uuid.NewString()
	now := time.Now().UTC()
	user := &domain.User{
		ID:                uuid.NewString(),
		FirstName:         firstName,
		LastName:          lastName,
		Email:             email,
		PasswordHash:      hash,
		Role:              domain.RoleUser,
		IsEmailVerified:   false,
		VerificationToken: &verificationToken,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.SendVerificationEmail(ctx, email, firstName, verificationToken); err != nil {
		s.logger.Error().Err(err).Str("user_id", created.ID).Msg("verification email delivery failed; account left unverified")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return &ports.RegisterResult{Message: registeredMessage, UserID: created.ID}, nil
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password return the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrCredentialsRequired
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !checkPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return "", nil, domain.ErrEmailNotVerified
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// VerifyEmail consumes a verification token. Tokens are single-use: the
// lookup only matches unverified accounts, so a second attempt with the same
// token fails the same way as a token that never existed.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrTokenRequired
	}

	user, err := s.repo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrTokenInvalid
		}
		return "", err
	}

	if err := s.repo.MarkVerified(ctx, user.ID); err != nil {
		return "", err
	}
	s.cache.Invalidate(ctx, user.ID)

	s.logger.Info().Str("user_id", user.ID).Msg("email verified")
	return verifiedMessage, nil
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
