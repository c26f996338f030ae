package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookSecret_Verify(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("matching token passes", func(t *testing.T) {
		handler := NewWebhookSecret("s3cret").Verify(next)

		req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil)
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "s3cret")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		handler := NewWebhookSecret("s3cret").Verify(next)

		req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil)
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "wrong")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		handler := NewWebhookSecret("s3cret").Verify(next)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty secret accepts all", func(t *testing.T) {
		handler := NewWebhookSecret("").Verify(next)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
