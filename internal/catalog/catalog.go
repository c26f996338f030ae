// Package catalog defines the external movie metadata interface.
package catalog

import (
	"context"

	"github.com/moviemate/moviemate-bot/internal/domain"
)

// Client defines the interface for the external movie catalog.
type Client interface {
	// SearchByTitle returns catalog entries matching the query, best
	// match first. An empty list is not an error.
	SearchByTitle(ctx context.Context, query string) ([]domain.ResultItem, error)

	// Popular returns the catalog's current popular movies.
	Popular(ctx context.Context) ([]domain.ResultItem, error)

	// TopRated returns the catalog's top rated movies.
	TopRated(ctx context.Context) ([]domain.ResultItem, error)
}
