package memory

import (
	"context"
	"testing"
	"time"

	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSessionStore_GetMissing(t *testing.T) {
	store := NewSessionStore(time.Hour)

	session, err := store.Get(context.Background(), "42")
	assert.NoError(t, err)
	assert.Equal(t, "42", session.ChatID)
	assert.True(t, session.Idle())
}

func TestSessionStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(time.Hour)

	session := domain.NewSession("42")
	session.Flow = domain.FlowState{
		Kind:  domain.FlowAwaitingCategory,
		Draft: &domain.MovieDraft{Title: "Heat"},
	}
	assert.NoError(t, store.Put(ctx, session))

	got, err := store.Get(ctx, "42")
	assert.NoError(t, err)
	assert.Equal(t, domain.FlowAwaitingCategory, got.Flow.Kind)
	assert.Equal(t, "Heat", got.Flow.Draft.Title)

	// Sessions are per chat.
	other, err := store.Get(ctx, "43")
	assert.NoError(t, err)
	assert.True(t, other.Idle())
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(20 * time.Millisecond)

	session := domain.NewSession("42")
	session.Flow.Kind = domain.FlowAwaitingTitle
	assert.NoError(t, store.Put(ctx, session))

	time.Sleep(50 * time.Millisecond)

	got, err := store.Get(ctx, "42")
	assert.NoError(t, err)
	assert.True(t, got.Idle())
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(time.Hour)

	session := domain.NewSession("42")
	session.Flow.Kind = domain.FlowAwaitingTitle
	assert.NoError(t, store.Put(ctx, session))
	assert.NoError(t, store.Delete(ctx, "42"))

	got, err := store.Get(ctx, "42")
	assert.NoError(t, err)
	assert.True(t, got.Idle())

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, "42"))
}
