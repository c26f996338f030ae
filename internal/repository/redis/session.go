package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moviemate/moviemate-bot/internal/domain"
)

const sessionPrefix = "session:"

// SessionStore keeps dialog sessions in Redis so flow state survives a
// restart and can be shared by multiple bot replicas.
type SessionStore struct {
	client *Client
	ttl    time.Duration
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client *Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Get returns the chat's session, or a fresh idle one when absent or
// expired. A session that fails to decode is treated as absent.
func (s *SessionStore) Get(ctx context.Context, chatID string) (*domain.Session, error) {
	key := sessionPrefix + chatID

	data, err := s.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return domain.NewSession(chatID), nil // cache miss
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return domain.NewSession(chatID), nil
	}
	return &session, nil
}

// Put stores the session, refreshing its TTL.
func (s *SessionStore) Put(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.client.rdb.Set(ctx, sessionPrefix+session.ChatID, data, s.ttl).Err()
}

// Delete drops the session.
func (s *SessionStore) Delete(ctx context.Context, chatID string) error {
	return s.client.rdb.Del(ctx, sessionPrefix+chatID).Err()
}
