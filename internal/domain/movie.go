package domain

import (
	"context"

	"github.com/google/uuid"
)

// Category is the persisted classification of a movie. Users see the
// labels "planned" and "loved"; "loved" is stored as "watched". The
// mapping is applied here, at the type boundary, so every read and write
// site goes through the same two functions.
type Category string

const (
	CategoryPlanned Category = "planned"
	CategoryWatched Category = "watched"
)

// Label returns the user-facing name for the category.
func (c Category) Label() string {
	if c == CategoryWatched {
		return "loved"
	}
	return string(c)
}

// ParseCategoryLabel maps a user-supplied category token to its persisted
// value. Anything outside {planned, loved} is a validation error.
func ParseCategoryLabel(label string) (Category, error) {
	switch label {
	case "planned":
		return CategoryPlanned, nil
	case "loved":
		return CategoryWatched, nil
	default:
		return "", Validationf("Category must be 'planned' or 'loved'.")
	}
}

// Movie represents one record in the movies table.
type Movie struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	TMDBID      *int64    `json:"tmdb_id,omitempty"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	Overview    *string   `json:"overview,omitempty"`
}

// MovieDraft is an uncommitted movie awaiting category confirmation.
// Meta is set when the title came from a catalog browse.
type MovieDraft struct {
	Title string        `json:"title"`
	Meta  *ExternalMeta `json:"meta,omitempty"`
}

// ExternalMeta carries catalog metadata captured with a browsed movie.
type ExternalMeta struct {
	TMDBID      int64   `json:"tmdb_id"`
	ReleaseYear *int    `json:"release_year,omitempty"`
	Overview    *string `json:"overview,omitempty"`
}

// MovieRepository defines the interface for movie record storage. Every
// lookup and mutation is scoped by explicit user ids; the store performs
// no authorization beyond what the filter expresses.
type MovieRepository interface {
	// Insert creates a movie record and returns it with its id set.
	Insert(ctx context.Context, movie *Movie) (*Movie, error)

	// ListByUsers returns movies owned by any of the users, optionally
	// restricted to the given categories.
	ListByUsers(ctx context.Context, userIDs []uuid.UUID, categories []Category) ([]Movie, error)

	// Get returns the movie when it belongs to one of the users,
	// otherwise ErrNotFound.
	Get(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID) (*Movie, error)

	// UpdateTitle renames the movie when it belongs to one of the users,
	// otherwise ErrNotFound.
	UpdateTitle(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID, title string) error

	// UpdateCategory re-tags the movie when it belongs to one of the
	// users, otherwise ErrNotFound.
	UpdateCategory(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID, category Category) error

	// Delete removes the movie when it belongs to one of the users,
	// otherwise ErrNotFound.
	Delete(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID) error
}
