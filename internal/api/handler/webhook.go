package handler

import (
	"encoding/json"
	"net/http"

	"github.com/moviemate/moviemate-bot/internal/telegram"
	"github.com/rs/zerolog/log"
)

// TelegramWebhook accepts update deliveries from Telegram. The update is
// handled to completion before the 200 goes back; Telegram retries on
// anything else, so decode failures are still acknowledged.
func TelegramWebhook(bot *telegram.Bot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update telegram.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Warn().Err(err).Msg("undecodable webhook payload")
			w.WriteHeader(http.StatusOK)
			return
		}

		bot.HandleUpdate(r.Context(), update)
		w.WriteHeader(http.StatusOK)
	}
}
