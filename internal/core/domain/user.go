package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Validation failures (rejected input, HTTP 400).
var ErrMissingFields = errors.New("first name, last name, email and password are required")
var ErrDisposableEmail = errors.New("temporary or disposable email addresses are not allowed")
var ErrCredentialsRequired = errors.New("email and password are required")
var ErrTokenRequired = errors.New("verification token is required")
var ErrTokenInvalid = errors.New("verification token is invalid or already used")

// Authentication and authorization failures.
var ErrInvalidCredentials = errors.New("incorrect credentials")
var ErrEmailNotVerified = errors.New("please verify your email before logging in")
var ErrForbidden = errors.New("access forbidden")

// Directory failures.
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("an account with this email already exists")

// User models an account holder. The password hash and the pending
// verification token never leave the process in API responses.
type User struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Role              string    `json:"role"`
	IsEmailVerified   bool      `json:"is_email_verified"`
	VerificationToken *string   `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
