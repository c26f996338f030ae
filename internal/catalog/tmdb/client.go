package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/moviemate/moviemate-bot/internal/config"
	"github.com/moviemate/moviemate-bot/internal/domain"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// Client implements catalog.Client against The Movie Database API v3.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a new TMDB client
func NewClient(cfg config.TMDBConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Results []movieResult `json:"results"`
}

type movieResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
}

// SearchByTitle returns catalog entries matching the query.
func (c *Client) SearchByTitle(ctx context.Context, query string) ([]domain.ResultItem, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.fetch(ctx, "/search/movie", params)
}

// Popular returns the catalog's current popular movies.
func (c *Client) Popular(ctx context.Context) ([]domain.ResultItem, error) {
	return c.fetch(ctx, "/movie/popular", nil)
}

// TopRated returns the catalog's top rated movies.
func (c *Client) TopRated(ctx context.Context) ([]domain.ResultItem, error) {
	return c.fetch(ctx, "/movie/top_rated", nil)
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]domain.ResultItem, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", "en-US")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: tmdb request failed: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tmdb returned status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode tmdb response: %v", domain.ErrRemoteUnavailable, err)
	}

	items := make([]domain.ResultItem, 0, len(body.Results))
	for _, m := range body.Results {
		items = append(items, toResultItem(m))
	}
	return items, nil
}

func toResultItem(m movieResult) domain.ResultItem {
	item := domain.ResultItem{
		TMDBID:   m.ID,
		Title:    m.Title,
		Overview: m.Overview,
		Rating:   m.VoteAverage,
	}
	if len(m.ReleaseDate) >= 4 {
		if year, err := strconv.Atoi(m.ReleaseDate[:4]); err == nil {
			item.ReleaseYear = &year
		}
	}
	if m.PosterPath != "" {
		item.PosterURL = posterBaseURL + m.PosterPath
	}
	return item
}
