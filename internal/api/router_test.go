package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moviemate/moviemate-bot/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestRouter_Health(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Mode = "polling"
	router := NewRouter(cfg, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_Ready(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Mode = "polling"
	router := NewRouter(cfg, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}

func TestRouter_NoWebhookRouteInPollingMode(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Mode = "polling"
	router := NewRouter(cfg, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
