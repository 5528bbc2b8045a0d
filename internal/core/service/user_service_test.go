package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/qualiextra/accounts-api/internal/core/domain"
	"github.com/qualiextra/accounts-api/internal/core/ports"
)

func seedUser(repo *stubUserRepo, id, email string) *domain.User {
	user := &domain.User{
		ID:              id,
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           email,
		PasswordHash:    "x",
		Role:            domain.RoleUser,
		IsEmailVerified: true,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	repo.users[id] = user
	return user
}

func TestUserService_Get_UsesCache(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u1", "jane@example.com")
	svc := NewUserService(repo, newStubCache(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "u1"); err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), "u1"); err != nil {
		t.Fatalf("second get failed: %v", err)
	}

	if repo.finds != 1 {
		t.Fatalf("expected one repository read, got %d", repo.finds)
	}
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubCache(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_InvalidatesCache(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u1", "jane@example.com")
	cache := newStubCache()
	svc := NewUserService(repo, cache, zerolog.Nop())

	// warm the cache
	if _, err := svc.Get(context.Background(), "u1"); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	first := "Janet"
	updated, err := svc.Update(context.Background(), "u1", ports.UserUpdate{FirstName: &first})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FirstName != "Janet" {
		t.Fatalf("unexpected first name: %s", updated.FirstName)
	}

	if len(cache.invalidated) != 1 || cache.invalidated[0] != "u1" {
		t.Fatalf("expected cache invalidation for u1, got %v", cache.invalidated)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubCache(), zerolog.Nop())

	first := "Janet"
	if _, err := svc.Update(context.Background(), "missing", ports.UserUpdate{FirstName: &first}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u1", "jane@example.com")
	cache := newStubCache()
	svc := NewUserService(repo, cache, zerolog.Nop())

	if err := svc.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected user removed")
	}
	if len(cache.invalidated) != 1 {
		t.Fatalf("expected cache invalidation")
	}
	if err := svc.Delete(context.Background(), "u1"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestEnsureDefaultAdmin_Idempotent(t *testing.T) {
	repo := newStubUserRepo()

	if err := EnsureDefaultAdmin(context.Background(), repo, "admin@qualiextra.com", "admin123", zerolog.Nop()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("expected one create, got %d", repo.creates)
	}

	admin, err := repo.FindFirstByRole(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("admin not found: %v", err)
	}
	if !admin.IsEmailVerified {
		t.Fatalf("seeded admin must be verified")
	}

	if err := EnsureDefaultAdmin(context.Background(), repo, "admin@qualiextra.com", "admin123", zerolog.Nop()); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("seed must be a no-op when an admin exists, creates=%d", repo.creates)
	}
}
