package telegram

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// Poller drives the bot in long-polling mode. Updates are handled
// strictly one at a time so per-chat flow state never races.
type Poller struct {
	client  *Client
	bot     *Bot
	timeout time.Duration
}

// NewPoller creates a new long-poll loop
func NewPoller(client *Client, bot *Bot, timeout time.Duration) *Poller {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Poller{
		client:  client,
		bot:     bot,
		timeout: timeout,
	}
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	// A lingering webhook blocks getUpdates.
	if err := p.client.DeleteWebhook(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to delete webhook before polling")
	}

	var offset int64
	for {
		updates, err := p.client.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Msg("getUpdates failed, backing off")
			select {
			case <-time.After(5 * time.Second):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			p.bot.HandleUpdate(ctx, update)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
