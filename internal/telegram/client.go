package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/moviemate/moviemate-bot/internal/domain"
)

const defaultAPIBase = "https://api.telegram.org"

// Client is a minimal Bot API client covering only the methods the bot
// calls.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a new Bot API client
func NewClient(token string) *Client {
	return NewClientWithBase(token, defaultAPIBase)
}

// NewClientWithBase allows overriding the API host, used by tests.
func NewClientWithBase(token, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		// Long polling holds the connection open for the poll timeout, so
		// the client timeout must sit above it.
		client: &http.Client{Timeout: 65 * time.Second},
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

func (c *Client) call(ctx context.Context, method string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: telegram %s failed: %v", domain.ErrRemoteUnavailable, method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s response: %v", domain.ErrRemoteUnavailable, method, err)
	}

	var api apiResponse
	if err := json.Unmarshal(raw, &api); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %v", domain.ErrRemoteUnavailable, method, err)
	}
	if !api.OK {
		return fmt.Errorf("telegram %s error %d: %s", method, api.ErrorCode, api.Description)
	}
	if out != nil && len(api.Result) > 0 {
		if err := json.Unmarshal(api.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}
	return nil
}

// GetMe verifies the token and returns the bot account.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var user User
	if err := c.call(ctx, "getMe", struct{}{}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUpdates long-polls for updates past offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	var updates []Update
	req := getUpdatesRequest{
		Offset:         offset,
		Timeout:        int(timeout.Seconds()),
		AllowedUpdates: []string{"message", "callback_query"},
	}
	if err := c.call(ctx, "getUpdates", req, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage sends an HTML-formatted message.
func (c *Client) SendMessage(ctx context.Context, chatID, text string, markup any) (*Message, error) {
	var msg Message
	req := sendMessageRequest{ChatID: chatID, Text: text, ParseMode: "HTML", ReplyMarkup: markup}
	if err := c.call(ctx, "sendMessage", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendPhoto sends a photo by URL with an HTML caption.
func (c *Client) SendPhoto(ctx context.Context, chatID, photoURL, caption string, markup any) (*Message, error) {
	var msg Message
	req := sendPhotoRequest{ChatID: chatID, Photo: photoURL, Caption: caption, ParseMode: "HTML", ReplyMarkup: markup}
	if err := c.call(ctx, "sendPhoto", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditMessageText replaces the text and inline keyboard of a message.
func (c *Client) EditMessageText(ctx context.Context, chatID string, messageID int64, text string, markup *InlineKeyboardMarkup) error {
	req := editMessageTextRequest{ChatID: chatID, MessageID: messageID, Text: text, ParseMode: "HTML", ReplyMarkup: markup}
	return c.call(ctx, "editMessageText", req, nil)
}

// EditMessageCaption replaces the caption of a photo message.
func (c *Client) EditMessageCaption(ctx context.Context, chatID string, messageID int64, caption string, markup *InlineKeyboardMarkup) error {
	req := editMessageCaptionRequest{ChatID: chatID, MessageID: messageID, Caption: caption, ParseMode: "HTML", ReplyMarkup: markup}
	return c.call(ctx, "editMessageCaption", req, nil)
}

// AnswerCallbackQuery dismisses the button-press spinner, optionally
// with a popup text.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	return c.call(ctx, "answerCallbackQuery", answerCallbackRequest{CallbackQueryID: callbackID, Text: text}, nil)
}

// SetWebhook registers the webhook endpoint with Telegram.
func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	req := setWebhookRequest{
		URL:            url,
		SecretToken:    secret,
		AllowedUpdates: []string{"message", "callback_query"},
	}
	return c.call(ctx, "setWebhook", req, nil)
}

// DeleteWebhook unregisters the webhook so polling can take over.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	return c.call(ctx, "deleteWebhook", struct{}{}, nil)
}
