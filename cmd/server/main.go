package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/qualiextra/accounts-api/docs" // swagger docs

	"github.com/qualiextra/accounts-api/internal/api"
	"github.com/qualiextra/accounts-api/internal/auth"
	"github.com/qualiextra/accounts-api/internal/core/service"
	"github.com/qualiextra/accounts-api/internal/infrastructure/config"
	"github.com/qualiextra/accounts-api/internal/infrastructure/db/postgres"
	"github.com/qualiextra/accounts-api/internal/infrastructure/db/redis"
	"github.com/qualiextra/accounts-api/internal/infrastructure/mail"
	"github.com/qualiextra/accounts-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Qualiextra Accounts API
// @version 1.0
// @description User accounts and authentication: registration with email verification, JWT login, and role-based profile management.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := postgres.NewUserRepository(db)
	userCache := redis.NewUserCache(rdb)
	mailer := mail.NewMailer(cfg.Mailgun.Domain, cfg.Mailgun.APIKey, cfg.Mailgun.APIBase, cfg.Mailgun.From, cfg.BaseURL)
	tokens := auth.NewTokenService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, mailer, userCache, tokens, log)
	userService := service.NewUserService(userRepo, userCache, log)

	if err := service.EnsureDefaultAdmin(ctx, userRepo, cfg.Admin.Email, cfg.Admin.Password, log); err != nil {
		log.Fatal().Err(err).Msg("admin seed")
	}

	e := api.NewRouter(authService, userService, tokens, db, rdb, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
