package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/moviemate/moviemate-bot/internal/domain"
)

// MovieRepository implements domain.MovieRepository against the movies
// table. Every operation carries an explicit user-id filter; ownership
// checks are nothing more than those filters matching zero rows.
type MovieRepository struct {
	client *Client
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(client *Client) *MovieRepository {
	return &MovieRepository{client: client}
}

// Insert creates a movie record and returns it with its id set.
func (r *MovieRepository) Insert(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	body := map[string]any{
		"user_id":  movie.UserID,
		"title":    movie.Title,
		"category": movie.Category,
	}
	if movie.TMDBID != nil {
		body["tmdb_id"] = *movie.TMDBID
	}
	if movie.ReleaseYear != nil {
		body["release_year"] = *movie.ReleaseYear
	}
	if movie.Overview != nil {
		body["overview"] = *movie.Overview
	}

	var inserted []domain.Movie
	if err := r.client.do(ctx, http.MethodPost, "movies", nil, body, &inserted); err != nil {
		return nil, err
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("%w: supabase returned no row for inserted movie", domain.ErrRemoteUnavailable)
	}
	return &inserted[0], nil
}

// ListByUsers returns movies owned by any of the users, optionally
// restricted to the given categories.
func (r *MovieRepository) ListByUsers(ctx context.Context, userIDs []uuid.UUID, categories []domain.Category) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", in(userIDs))
	if len(categories) == 1 {
		query.Set("category", eq(string(categories[0])))
	} else if len(categories) > 1 {
		parts := make([]string, len(categories))
		for i, c := range categories {
			parts[i] = string(c)
		}
		query.Set("category", "in.("+strings.Join(parts, ",")+")")
	}
	query.Set("order", "title.asc")

	var movies []domain.Movie
	if err := r.client.do(ctx, http.MethodGet, "movies", query, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Get returns the movie when it belongs to one of the users.
func (r *MovieRepository) Get(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID) (*domain.Movie, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", eq(movieID.String()))
	query.Set("user_id", in(userIDs))

	var movies []domain.Movie
	if err := r.client.do(ctx, http.MethodGet, "movies", query, nil, &movies); err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("movie %s: %w", movieID, domain.ErrNotFound)
	}
	return &movies[0], nil
}

// UpdateTitle renames the movie when it belongs to one of the users.
func (r *MovieRepository) UpdateTitle(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID, title string) error {
	return r.update(ctx, movieID, userIDs, map[string]any{"title": title})
}

// UpdateCategory re-tags the movie when it belongs to one of the users.
func (r *MovieRepository) UpdateCategory(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID, category domain.Category) error {
	return r.update(ctx, movieID, userIDs, map[string]any{"category": category})
}

func (r *MovieRepository) update(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID, body map[string]any) error {
	query := url.Values{}
	query.Set("id", eq(movieID.String()))
	query.Set("user_id", in(userIDs))

	var updated []domain.Movie
	if err := r.client.do(ctx, http.MethodPatch, "movies", query, body, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return fmt.Errorf("movie %s: %w", movieID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the movie when it belongs to one of the users.
func (r *MovieRepository) Delete(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID) error {
	query := url.Values{}
	query.Set("id", eq(movieID.String()))
	query.Set("user_id", in(userIDs))

	var deleted []domain.Movie
	if err := r.client.do(ctx, http.MethodDelete, "movies", query, nil, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return fmt.Errorf("movie %s: %w", movieID, domain.ErrNotFound)
	}
	return nil
}
