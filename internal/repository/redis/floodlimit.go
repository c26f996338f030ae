package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const floodLimitPrefix = "flood:"

// FloodLimiter caps how many events a single chat may produce per
// minute. It only guards against button mashing; it is not a
// throughput control.
type FloodLimiter struct {
	client          *Client
	eventsPerMinute int
}

// NewFloodLimiter creates a new per-chat flood limiter
func NewFloodLimiter(client *Client, eventsPerMinute int) *FloodLimiter {
	return &FloodLimiter{
		client:          client,
		eventsPerMinute: eventsPerMinute,
	}
}

// Allow reports whether the chat may emit another event this minute.
// On Redis failure it allows the event; dropping user input over a cache
// hiccup would be worse than letting a burst through.
func (l *FloodLimiter) Allow(ctx context.Context, chatID string) bool {
	key := fmt.Sprintf("%s%s", floodLimitPrefix, chatID)

	pipe := l.client.rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, time.Minute)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return true
	}
	return incrCmd.Val() <= int64(l.eventsPerMinute)
}

// Reset clears the chat's counter.
func (l *FloodLimiter) Reset(ctx context.Context, chatID string) error {
	return l.client.rdb.Del(ctx, floodLimitPrefix+chatID).Err()
}
