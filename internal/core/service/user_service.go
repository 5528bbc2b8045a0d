package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/qualiextra/accounts-api/internal/core/domain"
	"github.com/qualiextra/accounts-api/internal/core/ports"
)

// UserService implements profile reads and writes over the directory, with a
// best-effort read cache in front of single-user lookups.
type UserService struct {
	repo   ports.UserRepository
	cache  ports.UserCache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.UserCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := s.cache.Get(ctx, id); ok {
		return user, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, user)
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id string, fields ports.UserUpdate) (*domain.User, error) {
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
