package telegram

import (
	"context"
	"strconv"
	"strings"

	"github.com/moviemate/moviemate-bot/internal/dialog"
	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/rs/zerolog/log"
)

// FloodLimiter guards against chats spamming events.
type FloodLimiter interface {
	Allow(ctx context.Context, chatID string) bool
}

// Bot glues the Bot API client to the dialog controller. One instance
// serves both transport modes; the poller and the webhook handler feed
// updates into HandleUpdate.
type Bot struct {
	client     *Client
	controller *dialog.Controller
	limiter    FloodLimiter
}

// NewBot creates a new bot
func NewBot(client *Client, controller *dialog.Controller, limiter FloodLimiter) *Bot {
	return &Bot{
		client:     client,
		controller: controller,
		limiter:    limiter,
	}
}

// HandleUpdate processes one update to completion.
func (b *Bot) HandleUpdate(ctx context.Context, update Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *Message) {
	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if b.limiter != nil && !b.limiter.Allow(ctx, chatID) {
		log.Warn().Str("chat_id", chatID).Msg("flood limit exceeded, dropping message")
		return
	}

	var event dialog.Event
	switch {
	case strings.HasPrefix(text, "/"):
		event = parseCommand(text)
	case b.controller.InFlow(ctx, chatID):
		// A flow waiting for input owns the text; "Planned" mid add-flow
		// is a title, not a menu press.
		event = dialog.FreeText{Text: text}
	default:
		if cmd, ok := decodeMenuLabel(text); ok {
			event = cmd
		} else {
			event = dialog.FreeText{Text: text}
		}
	}

	reply := b.controller.HandleEvent(ctx, chatID, event)
	b.send(ctx, chatID, reply)
}

func (b *Bot) handleCallback(ctx context.Context, cb *CallbackQuery) {
	if cb.Message == nil {
		// Message too old for Telegram to include; nothing to render on.
		b.answer(ctx, cb.ID, "")
		return
	}
	chatID := strconv.FormatInt(cb.Message.Chat.ID, 10)

	if b.limiter != nil && !b.limiter.Allow(ctx, chatID) {
		b.answer(ctx, cb.ID, "Too many requests, slow down")
		return
	}

	reply := b.controller.HandleEvent(ctx, chatID, dialog.ButtonPress{Token: cb.Data})

	b.answer(ctx, cb.ID, reply.Ack)
	if reply.Text == "" && reply.PhotoURL == "" {
		return
	}

	if reply.Edit {
		if b.edit(ctx, chatID, cb.Message, reply) {
			return
		}
		// Edit rejected (message too old, or content type changed);
		// deliver as a fresh message instead.
	}
	b.send(ctx, chatID, reply)
}

// edit rewrites the message the pressed button was attached to. Returns
// false when the edit cannot apply and the reply should be re-sent.
func (b *Bot) edit(ctx context.Context, chatID string, msg *Message, reply *domain.Reply) bool {
	// A text-only message cannot become a photo and vice versa.
	hasPhoto := len(msg.Photo) > 0
	if hasPhoto != (reply.PhotoURL != "") {
		return false
	}

	markup := inlineMarkup(reply.Keyboard)
	var err error
	if hasPhoto {
		err = b.client.EditMessageCaption(ctx, chatID, msg.MessageID, reply.Text, markup)
	} else {
		err = b.client.EditMessageText(ctx, chatID, msg.MessageID, reply.Text, markup)
	}
	if err != nil {
		log.Warn().Err(err).Str("chat_id", chatID).Msg("message edit failed, sending new message")
		return false
	}
	return true
}

func (b *Bot) send(ctx context.Context, chatID string, reply *domain.Reply) {
	if reply == nil || (reply.Text == "" && reply.PhotoURL == "") {
		return
	}

	var markup any
	if reply.Keyboard != nil {
		markup = inlineMarkup(reply.Keyboard)
	} else if m := menuMarkup(reply.Menu); m != nil {
		markup = m
	}

	var err error
	if reply.PhotoURL != "" {
		_, err = b.client.SendPhoto(ctx, chatID, reply.PhotoURL, reply.Text, markup)
		if err != nil {
			// Telegram rejects some poster URLs; the text still matters.
			log.Warn().Err(err).Str("chat_id", chatID).Msg("photo send failed, falling back to text")
			_, err = b.client.SendMessage(ctx, chatID, reply.Text, markup)
		}
	} else {
		_, err = b.client.SendMessage(ctx, chatID, reply.Text, markup)
	}
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("failed to send reply")
	}
}

func (b *Bot) answer(ctx context.Context, callbackID, text string) {
	if err := b.client.AnswerCallbackQuery(ctx, callbackID, text); err != nil {
		log.Warn().Err(err).Msg("failed to answer callback query")
	}
}

// parseCommand splits "/name arg1 arg2" into a Command event. A bot
// mention suffix ("/list@MovieMateBot") is stripped.
func parseCommand(text string) dialog.Command {
	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return dialog.Command{Name: strings.ToLower(name), Args: fields[1:]}
}
