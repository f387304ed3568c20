package handlers

import (
	"AuthKit/internal/config"
	"AuthKit/internal/middleware"
	"AuthKit/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	authService *service.AuthService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(authService))

	authHandler := NewAuthHandler(authService, logger, config)

	r.Get("/health", Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/verify", authHandler.Verify)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/forgot", authHandler.Forgot)
		r.Post("/reset", authHandler.Reset)
		r.Post("/resend-verify", authHandler.ResendVerify)
		r.Post("/change-password/request", authHandler.ChangePasswordRequest)
		r.Post("/change-password/confirm", authHandler.ChangePasswordConfirm)
	})

	r.Get("/me", authHandler.Me)

	return &Handler{Router: r}
}
