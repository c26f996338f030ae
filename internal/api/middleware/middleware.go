package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/moviemate/moviemate-bot/internal/api/response"
	"github.com/rs/zerolog/log"
)

// Logger logs every request with method, path, status and duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

// WebhookSecret verifies Telegram's secret token header on webhook
// deliveries. With an empty secret every delivery is accepted.
type WebhookSecret struct {
	secret string
}

// NewWebhookSecret creates a new webhook secret verifier
func NewWebhookSecret(secret string) *WebhookSecret {
	return &WebhookSecret{secret: secret}
}

// Verify rejects deliveries whose secret token header does not match.
func (m *WebhookSecret) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.secret != "" && r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != m.secret {
			response.Unauthorized(w, "invalid secret token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
