package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/qualiextra/accounts-api/internal/core/domain"
	"github.com/qualiextra/accounts-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, firstName, lastName, email, password string) (*ports.RegisterResult, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	verifyFn   func(ctx context.Context, token string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, firstName, lastName, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, token string) (string, error) {
	return s.verifyFn(ctx, token)
}

func newAuthTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, firstName, lastName, email, password string) (*ports.RegisterResult, error) {
			if firstName != "Alice" || lastName != "Martin" || email != "alice@example.com" {
				t.Fatalf("unexpected args: %s %s %s", firstName, lastName, email)
			}
			return &ports.RegisterResult{
				Message: "Account created successfully. Please verify your email before logging in.",
				UserID:  "user_1",
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"first_name":"Alice","last_name":"Martin","email":"alice@example.com","password":"secret1"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user_id"] != "user_1" {
		t.Fatalf("unexpected user_id: %v", resp["user_id"])
	}
	if msg, _ := resp["message"].(string); !strings.Contains(msg, "verify your email") {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Register_DisposableEmail(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, firstName, lastName, email, password string) (*ports.RegisterResult, error) {
			return nil, domain.ErrDisposableEmail
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"first_name":"Bob","last_name":"Smith","email":"bob@mailinator.com","password":"secret1"}`)

	err := handler.Register(c)
	if !errors.Is(err, domain.ErrDisposableEmail) {
		t.Fatalf("expected ErrDisposableEmail, got %v", err)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, firstName, lastName, email, password string) (*ports.RegisterResult, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"first_name":"Bob","last_name":"Smith","email":"bob@example.com","password":"secret1"}`)

	err := handler.Register(c)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, firstName, lastName, email, password string) (*ports.RegisterResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register", "not-json")

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, firstName, lastName, email, password string) (*ports.RegisterResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	// Password below the minimum length.
	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"first_name":"Bob","last_name":"Smith","email":"bob@example.com","password":"abc"}`)

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "user_1", Email: email, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"bad-password"}`)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_Unverified(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrEmailNotVerified
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/login", "{")

	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_VerifyEmail_Success(t *testing.T) {
	stub := &stubAuthService{
		verifyFn: func(ctx context.Context, token string) (string, error) {
			if token != "tok-123" {
				t.Fatalf("unexpected token: %s", token)
			}
			return "Email verified successfully! You can now log in.", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodGet, "/auth/verify-email?token=tok-123", "")

	if err := handler.VerifyEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if msg, _ := resp["message"].(string); !strings.Contains(msg, "verified") {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_VerifyEmail_InvalidToken(t *testing.T) {
	stub := &stubAuthService{
		verifyFn: func(ctx context.Context, token string) (string, error) {
			return "", domain.ErrTokenInvalid
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodGet, "/auth/verify-email?token=ghost", "")

	err := handler.VerifyEmail(c)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
