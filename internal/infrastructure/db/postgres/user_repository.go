package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/qualiextra/accounts-api/internal/core/domain"
	"github.com/qualiextra/accounts-api/internal/core/ports"
)

// UserRepository is the GORM-backed user directory.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// userRecord is the storage shape; the domain model stays free of ORM tags.
type userRecord struct {
	ID                string  `gorm:"primaryKey"`
	FirstName         string  `gorm:"not null"`
	LastName          string  `gorm:"not null"`
	Email             string  `gorm:"uniqueIndex;not null"`
	PasswordHash      string  `gorm:"not null"`
	Role              string  `gorm:"not null;default:USER"`
	IsEmailVerified   bool    `gorm:"not null;default:false"`
	VerificationToken *string `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (userRecord) TableName() string { return "users" }

func toRecord(u *domain.User) *userRecord {
	return &userRecord{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		Role:              u.Role,
		IsEmailVerified:   u.IsEmailVerified,
		VerificationToken: u.VerificationToken,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func toDomain(r *userRecord) *domain.User {
	return &domain.User{
		ID:                r.ID,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Email:             r.Email,
		PasswordHash:      r.PasswordHash,
		Role:              r.Role,
		IsEmailVerified:   r.IsEmailVerified,
		VerificationToken: r.VerificationToken,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return toDomain(&rec), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return toDomain(&rec), nil
}

// FindByVerificationToken only matches accounts still awaiting verification,
// which makes tokens effectively single-use.
func (r *UserRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).
		Where("verification_token = ? AND is_email_verified = ?", token, false).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by verification token: %w", err)
	}
	return toDomain(&rec), nil
}

func (r *UserRepository) FindFirstByRole(ctx context.Context, role string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where("role = ?", role).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by role: %w", err)
	}
	return toDomain(&rec), nil
}

// Create inserts a user. The unique index on email is the authority for
// duplicate registrations, including concurrent ones.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	rec := toRecord(user)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return toDomain(rec), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, fields ports.UserUpdate) (*domain.User, error) {
	updates := map[string]any{}
	if fields.FirstName != nil {
		updates["first_name"] = *fields.FirstName
	}
	if fields.LastName != nil {
		updates["last_name"] = *fields.LastName
	}
	if fields.Email != nil {
		updates["email"] = *fields.Email
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		result := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return nil, domain.ErrEmailTaken
			}
			return nil, fmt.Errorf("update user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrUserNotFound
		}
	}

	return r.FindByID(ctx, id)
}

func (r *UserRepository) MarkVerified(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).Updates(map[string]any{
		"is_email_verified":  true,
		"verification_token": nil,
		"updated_at":         time.Now().UTC(),
	})
	if result.Error != nil {
		return fmt.Errorf("mark user verified: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRecord{})
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Order("created_at").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(recs))
	for i := range recs {
		users = append(users, *toDomain(&recs[i]))
	}
	return users, nil
}
