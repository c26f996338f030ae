package memory

import (
	"context"
	"time"

	"github.com/moviemate/moviemate-bot/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

// SessionStore is the default in-process session store. Sessions live in
// a TTL cache and vanish on restart, which is acceptable: flow state is a
// scratchpad, not a record.
type SessionStore struct {
	cache *gocache.Cache
}

// NewSessionStore creates an in-memory session store with the given TTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the chat's session, or a fresh idle one when absent.
func (s *SessionStore) Get(_ context.Context, chatID string) (*domain.Session, error) {
	if v, ok := s.cache.Get(chatID); ok {
		if session, ok := v.(*domain.Session); ok {
			return session, nil
		}
	}
	return domain.NewSession(chatID), nil
}

// Put stores the session, refreshing its TTL.
func (s *SessionStore) Put(_ context.Context, session *domain.Session) error {
	s.cache.SetDefault(session.ChatID, session)
	return nil
}

// Delete drops the session.
func (s *SessionStore) Delete(_ context.Context, chatID string) error {
	s.cache.Delete(chatID)
	return nil
}
