package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qualiextra/accounts-api/internal/api/metrics"
	"github.com/qualiextra/accounts-api/internal/core/domain"
)

const userCacheTTL = 5 * time.Minute

// UserCache is a read-through cache for user records, keyed by id.
// It fails safe: any Redis error behaves like a cache miss so the directory
// stays the source of truth even when Redis is down.
type UserCache struct {
	client *redis.Client
}

func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// cachedUser is the serialized shape. The password hash and verification
// token are kept so reads via the cache behave exactly like directory reads;
// the JSON never leaves the process (domain.User hides both fields).
type cachedUser struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"password_hash"`
	Role              string    `json:"role"`
	IsEmailVerified   bool      `json:"is_email_verified"`
	VerificationToken *string   `json:"verification_token"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, bool) {
	payload, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		metrics.UserCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var cached cachedUser
	if err := json.Unmarshal(payload, &cached); err != nil {
		metrics.UserCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.UserCacheTotal.WithLabelValues("hit").Inc()
	return &domain.User{
		ID:                cached.ID,
		FirstName:         cached.FirstName,
		LastName:          cached.LastName,
		Email:             cached.Email,
		PasswordHash:      cached.PasswordHash,
		Role:              cached.Role,
		IsEmailVerified:   cached.IsEmailVerified,
		VerificationToken: cached.VerificationToken,
		CreatedAt:         cached.CreatedAt,
		UpdatedAt:         cached.UpdatedAt,
	}, true
}

func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	payload, err := json.Marshal(cachedUser{
		ID:                user.ID,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		Role:              user.Role,
		IsEmailVerified:   user.IsEmailVerified,
		VerificationToken: user.VerificationToken,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	})
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(user.ID), payload, userCacheTTL).Err()
}

func (c *UserCache) Invalidate(ctx context.Context, id string) {
	_ = c.client.Del(ctx, c.key(id)).Err()
}

func (c *UserCache) key(id string) string {
	return "user:" + id
}
