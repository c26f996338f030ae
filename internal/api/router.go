package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/moviemate/moviemate-bot/internal/api/handler"
	custommiddleware "github.com/moviemate/moviemate-bot/internal/api/middleware"
	"github.com/moviemate/moviemate-bot/internal/config"
	"github.com/moviemate/moviemate-bot/internal/telegram"
)

// NewRouter creates and configures the HTTP router. The webhook route is
// only mounted in webhook mode; health endpoints are always served.
func NewRouter(cfg *config.Config, bot *telegram.Bot, pingers ...handler.Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handler.HealthCheck)
	r.Get("/ready", handler.ReadyCheck(pingers...))

	if cfg.Telegram.Mode == "webhook" {
		secret := custommiddleware.NewWebhookSecret(cfg.Telegram.WebhookSecret)
		r.Group(func(r chi.Router) {
			r.Use(secret.Verify)
			r.Post("/webhook/telegram", handler.TelegramWebhook(bot))
		})
	}

	return r
}
