// Package trakt is a thin client for the Trakt v2 API endpoints the
// recommendation pipeline reads: the public trending/popularity lists
// and a user's watch history.
package trakt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL  = "https://api.trakt.tv"
	traktAPIVersion = "2"

	// Trakt normally answers within a couple of seconds; 15s bounds a
	// hung upstream instead of relying on transport defaults.
	requestTimeout = 15 * time.Second
)

// Kind selects which Trakt list family an endpoint addresses.
const (
	KindMovies = "movies"
	KindShows  = "shows"
)

// StatusError is returned when Trakt answers with a non-2xx status.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("trakt %s: status %d", e.Path, e.StatusCode)
}

// Client handles Trakt API reads. The client ID is supplied per call
// because it arrives with each catalog request's configuration.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Trakt API client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// IDs holds external identifiers for a media item.
type IDs struct {
	Trakt int    `json:"trakt,omitempty"`
	Slug  string `json:"slug,omitempty"`
	IMDB  string `json:"imdb,omitempty"`
	TMDB  int    `json:"tmdb,omitempty"`
	TVDB  int    `json:"tvdb,omitempty"`
}

// Media is a movie or show as Trakt represents it.
type Media struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	IDs   IDs    `json:"ids"`
}

// TrendingItem wraps a media object under a kind-specific key, which is
// how the trending endpoint differs from the flat list endpoints.
type TrendingItem struct {
	Watchers int    `json:"watchers"`
	Movie    *Media `json:"movie,omitempty"`
	Show     *Media `json:"show,omitempty"`
}

// HistoryEntry is one play from a user's watch history.
type HistoryEntry struct {
	WatchedAt time.Time `json:"watched_at"`
	Action    string    `json:"action,omitempty"`
	Type      string    `json:"type,omitempty"`
	Movie     *Media    `json:"movie,omitempty"`
	Show      *Media    `json:"show,omitempty"`
}

// setTraktHeaders adds required Trakt API headers to a request.
func (c *Client) setTraktHeaders(req *http.Request, clientID string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("trakt-api-version", traktAPIVersion)
	req.Header.Set("trakt-api-key", clientID)
}

// getJSON issues a single GET for path and decodes the response body
// into v. No retries; the caller decides how to degrade.
func (c *Client) getJSON(ctx context.Context, clientID, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	c.setTraktHeaders(req, clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trakt api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// Trending retrieves the trending list for kind, capped at limit.
func (c *Client) Trending(ctx context.Context, clientID, kind string, limit int) ([]TrendingItem, error) {
	var items []TrendingItem
	path := fmt.Sprintf("%s/trending?limit=%d", kind, limit)
	if err := c.getJSON(ctx, clientID, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Popular retrieves the popular list for kind, capped at limit. The
// payload is a flat media array.
func (c *Client) Popular(ctx context.Context, clientID, kind string, limit int) ([]Media, error) {
	return c.flatList(ctx, clientID, fmt.Sprintf("%s/popular?limit=%d", kind, limit))
}

// Anticipated retrieves the anticipated list for kind, capped at limit.
func (c *Client) Anticipated(ctx context.Context, clientID, kind string, limit int) ([]Media, error) {
	return c.flatList(ctx, clientID, fmt.Sprintf("%s/anticipated?limit=%d", kind, limit))
}

// PlayedWeekly retrieves the most-played list for the past week, capped
// at limit.
func (c *Client) PlayedWeekly(ctx context.Context, clientID, kind string, limit int) ([]Media, error) {
	return c.flatList(ctx, clientID, fmt.Sprintf("%s/played/weekly?limit=%d", kind, limit))
}

func (c *Client) flatList(ctx context.Context, clientID, path string) ([]Media, error) {
	var items []Media
	if err := c.getJSON(ctx, clientID, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UserHistory retrieves a user's watch history for kind, capped at
// limit entries.
func (c *Client) UserHistory(ctx context.Context, clientID, username, kind string, limit int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	path := fmt.Sprintf("users/%s/history/%s?limit=%d", url.PathEscape(username), kind, limit)
	if err := c.getJSON(ctx, clientID, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
