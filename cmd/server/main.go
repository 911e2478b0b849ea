package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/sharjeelfaiq/accounts-api/internal/adapters/handler/http"
	"github.com/sharjeelfaiq/accounts-api/internal/adapters/mailer"
	"github.com/sharjeelfaiq/accounts-api/internal/adapters/repository/postgres"
	"github.com/sharjeelfaiq/accounts-api/internal/adapters/storage"
	"github.com/sharjeelfaiq/accounts-api/internal/config"
	"github.com/sharjeelfaiq/accounts-api/internal/core/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	blacklistRepo := postgres.NewTokenBlacklistRepository(db)

	tokenService := services.NewTokenService(
		[]byte(cfg.JWTSecret), cfg.AuthTokenTTL, cfg.RememberTokenTTL, cfg.VerificationTokenTTL)
	mail := mailer.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFromEmail, cfg.MailFromName, cfg.PublicBaseURL)
	files := storage.NewS3Store(cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey)

	authService := services.NewAuthService(userRepo, blacklistRepo, tokenService, mail, log)
	userService := services.NewUserService(userRepo, files, log)

	handler := http.NewHandler(
		http.NewAuthHandler(authService, log),
		http.NewUserHandler(userService, log),
		http.NewAuthMiddleware(tokenService, blacklistRepo, log),
	)

	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
