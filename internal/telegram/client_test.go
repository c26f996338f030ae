package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClient_SendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)

		var req sendMessageRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "42", req.ChatID)
		assert.Equal(t, "hello", req.Text)
		assert.Equal(t, "HTML", req.ParseMode)

		w.Write([]byte(`{"ok":true,"result":{"message_id":7,"chat":{"id":42}}}`))
	}))
	defer server.Close()

	client := NewClientWithBase("test-token", server.URL)
	msg, err := client.SendMessage(context.Background(), "42", "hello", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), msg.MessageID)
}

func TestClient_GetUpdates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req getUpdatesRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, int64(100), req.Offset)
		assert.Equal(t, []string{"message", "callback_query"}, req.AllowedUpdates)

		w.Write([]byte(`{"ok":true,"result":[
			{"update_id":100,"message":{"message_id":1,"chat":{"id":42},"text":"/start"}},
			{"update_id":101,"callback_query":{"id":"cb1","data":"next","message":{"message_id":2,"chat":{"id":42}}}}
		]}`))
	}))
	defer server.Close()

	client := NewClientWithBase("t", server.URL)
	updates, err := client.GetUpdates(context.Background(), 100, 30*time.Second)
	assert.NoError(t, err)
	assert.Len(t, updates, 2)
	assert.Equal(t, "/start", updates[0].Message.Text)
	assert.Equal(t, "next", updates[1].CallbackQuery.Data)
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: message is not modified"}`))
	}))
	defer server.Close()

	client := NewClientWithBase("t", server.URL)
	err := client.EditMessageText(context.Background(), "42", 1, "same", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "message is not modified")
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClientWithBase("t", "http://127.0.0.1:1")
	_, err := client.GetMe(context.Background())
	assert.True(t, errors.Is(err, domain.ErrRemoteUnavailable))
}
