package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AuthKit/internal/config"
	"AuthKit/internal/handlers"
	"AuthKit/internal/mailer"
	"AuthKit/internal/middleware"
	"AuthKit/internal/repo"
	"AuthKit/internal/security"
	"AuthKit/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN, cfg.ServerDBPath)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	tokens := security.NewTokens(cfg.AuthSecret,
		time.Duration(cfg.AccessTokenMin)*time.Minute,
		time.Duration(cfg.RefreshTokenDay)*24*time.Hour,
	)
	authService := service.NewAuthService(
		repo.NewUserRepository(gormDB),
		repo.NewCodeRepository(gormDB),
		tokens,
		mailer.New(cfg, sugar),
		sugar,
		service.Options{
			CodeTTL:     time.Duration(cfg.CodeExpMin) * time.Minute,
			MaxAttempts: cfg.MaxCodeAttempts,
			DebugCodes:  cfg.DebugEmailCodes,
		},
	)

	h := handlers.NewHandler(authService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"Postgres", cfg.DatabaseDSN != "",
		"SQLitePath", cfg.ServerDBPath,
		"SMTPHost", cfg.SMTPHost,
	)
	if cfg.AuthSecret == "dev-secret-key" {
		sugar.Warnw("AUTH_SECRET is not set, using the development secret")
	}

	srv := &http.Server{Addr: addr, Handler: h.Router}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
}
