package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moviemate/moviemate-bot/internal/config"
	"github.com/moviemate/moviemate-bot/internal/domain"
)

// Client is a thin wrapper over the Supabase PostgREST table API. It
// speaks plain HTTP; the store's own row-level consistency is the only
// consistency this layer relies on.
type Client struct {
	baseURL string
	key     string
	client  *http.Client
}

// NewClient creates a new Supabase client
func NewClient(cfg config.SupabaseConfig) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.URL, "/") + "/rest/v1",
		key:     cfg.Key,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// do issues one request against a table and decodes the JSON array
// PostgREST returns into out when out is non-nil. Mutating requests ask
// for the affected rows back so callers can detect zero-row updates.
func (c *Client) do(ctx context.Context, method, table string, query url.Values, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	endpoint := c.baseURL + "/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: supabase request failed: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: supabase returned status %d for %s %s",
			domain.ErrRemoteUnavailable, resp.StatusCode, method, table)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode supabase response: %v", domain.ErrRemoteUnavailable, err)
		}
	}
	return nil
}

// eq builds a PostgREST equality filter value.
func eq(value string) string {
	return "eq." + value
}

// in builds a PostgREST set-membership filter over user ids.
func in(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "in.(" + strings.Join(parts, ",") + ")"
}
