package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/qualiextra/accounts-api/internal/api/handler"
	"github.com/qualiextra/accounts-api/internal/api/middleware"
	"github.com/qualiextra/accounts-api/internal/auth"
	"github.com/qualiextra/accounts-api/internal/core/domain"
	"github.com/qualiextra/accounts-api/internal/core/ports"
	"github.com/qualiextra/accounts-api/internal/infrastructure/http/handlers"
)

// NewRouter builds the Echo instance with all routes registered. Collaborators
// are constructed once at startup and injected; nothing here owns state.
func NewRouter(
	authService ports.AuthService,
	userService ports.UserService,
	tokens *auth.TokenService,
	db *gorm.DB,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	authMiddleware := middleware.Auth(tokens)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API online")
	})

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify-email", authHandler.VerifyEmail)

	// --- User routes (authenticated; see per-route capability gates) ---
	users := e.Group("/users", authMiddleware)
	users.GET("/private", userHandler.Private)
	users.GET("", userHandler.List, middleware.RBAC(domain.RoleAdmin))
	users.GET("/:id", userHandler.Get, middleware.OwnerOrAdmin())
	users.PUT("/:id", userHandler.Update, middleware.OwnerOrAdmin())
	users.DELETE("/:id", userHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
