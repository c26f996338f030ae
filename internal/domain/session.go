package domain

import (
	"context"

	"github.com/google/uuid"
)

// FlowKind identifies the multi-turn interaction a session is in the
// middle of. A session holds exactly one flow at a time; starting a new
// flow replaces the previous one, pending draft included.
type FlowKind string

const (
	// FlowIdle indicates no active conversation.
	FlowIdle FlowKind = "idle"

	// FlowAwaitingTitle waits for a movie title after a bare /add.
	FlowAwaitingTitle FlowKind = "awaiting_title"

	// FlowAwaitingCategory waits for a category button for a pending draft.
	FlowAwaitingCategory FlowKind = "awaiting_category"

	// FlowAwaitingEditTitle waits for the replacement title of a movie.
	FlowAwaitingEditTitle FlowKind = "awaiting_edit_title"

	// FlowAwaitingSearch waits for a catalog search query.
	FlowAwaitingSearch FlowKind = "awaiting_search"

	// FlowBrowsing pages through cached catalog results.
	FlowBrowsing FlowKind = "browsing"
)

// FlowState is the tagged per-session dialog state. Only the fields
// belonging to the active Kind are meaningful; the zero value is Idle.
type FlowState struct {
	Kind FlowKind `json:"kind"`

	// Draft is set while Kind is FlowAwaitingCategory.
	Draft *MovieDraft `json:"draft,omitempty"`

	// EditMovieID is set while Kind is FlowAwaitingEditTitle.
	EditMovieID uuid.UUID `json:"edit_movie_id,omitempty"`

	// Results, Cursor and ListTitle are set while Kind is FlowBrowsing.
	Results   []ResultItem `json:"results,omitempty"`
	Cursor    int          `json:"cursor,omitempty"`
	ListTitle string       `json:"list_title,omitempty"`
}

// Session is the transient per-chat scratchpad. Lost on restart by
// design; durability is a non-goal.
type Session struct {
	ChatID string    `json:"chat_id"`
	Flow   FlowState `json:"flow"`
}

// NewSession returns an idle session for the chat.
func NewSession(chatID string) *Session {
	return &Session{ChatID: chatID, Flow: FlowState{Kind: FlowIdle}}
}

// Idle reports whether no flow is active.
func (s *Session) Idle() bool {
	return s.Flow.Kind == FlowIdle || s.Flow.Kind == ""
}

// AwaitingInput reports whether the active flow claims the next plain
// text message (browsing does not; its results only answer buttons).
func (s *Session) AwaitingInput() bool {
	switch s.Flow.Kind {
	case FlowAwaitingTitle, FlowAwaitingCategory, FlowAwaitingEditTitle, FlowAwaitingSearch:
		return true
	}
	return false
}

// Reset clears the flow state back to Idle, discarding any draft or
// cached browse results.
func (s *Session) Reset() {
	s.Flow = FlowState{Kind: FlowIdle}
}

// ResultItem is one external catalog entry cached inside a browsing
// session. Immutable once fetched; addressed by its index in the list.
type ResultItem struct {
	TMDBID      int64   `json:"tmdb_id"`
	Title       string  `json:"title"`
	ReleaseYear *int    `json:"release_year,omitempty"`
	Overview    string  `json:"overview"`
	Rating      float64 `json:"rating"`
	PosterURL   string  `json:"poster_url,omitempty"`
}

// SessionStore owns the transient sessions. Implementations must be safe
// for concurrent use across chats; within one chat events are handled
// sequentially, so no per-session locking is needed.
type SessionStore interface {
	// Get returns the chat's session, or a fresh idle one when absent
	// or expired.
	Get(ctx context.Context, chatID string) (*Session, error)

	// Put stores the session, refreshing its TTL.
	Put(ctx context.Context, session *Session) error

	// Delete drops the session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, chatID string) error
}
