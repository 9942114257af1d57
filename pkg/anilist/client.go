// Package anilist provides a client for the AniList GraphQL API.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://graphql.anilist.co"

// ErrNotFound indicates the search matched no media.
var ErrNotFound = errors.New("media not found")

// mediaQuery fetches one anime by search term with the fields this
// system consumes: title variants, synonyms, plain description, cover.
const mediaQuery = `
query ($search: String) {
  Media(search: $search, type: ANIME) {
    id
    title { romaji english native }
    synonyms
    description(asHtml: false)
    coverImage { extraLarge large }
  }
}
`

// Client is an AniList GraphQL API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom endpoint URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "anilist")
	}
}

// New creates a new AniList client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search looks up one anime by free-text title.
func (c *Client) Search(ctx context.Context, title string) (*Media, error) {
	start := time.Now()

	body, err := json.Marshal(graphqlRequest{
		Query:     mediaQuery,
		Variables: map[string]string{"search": title},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anilist API error: %s", resp.Status)
	}

	var mediaResp mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&mediaResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if mediaResp.Data.Media == nil {
		return nil, ErrNotFound
	}

	media := mediaResp.Data.Media.toMedia()

	if c.log != nil {
		c.log.Debug("media fetched", "title", title, "id", media.ID,
			"duration_ms", time.Since(start).Milliseconds())
	}

	return media, nil
}
