// Package spotify looks up concrete tracks for recommended genres through
// the Spotify Web API, authenticated with the client-credentials flow.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	tokenURL       = "https://accounts.spotify.com/api/token"
)

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.TrackProvider = (*Client)(nil)

// NewClient constructs a client that fetches and refreshes app tokens via
// the client-credentials flow.
func NewClient(clientID, clientSecret string) *Client {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	maxRetries, baseBackoff := getRetryConfig()
	return &Client{
		httpClient:  conf.Client(context.Background()),
		baseURL:     defaultBaseURL,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

// newClientWithBase wires an explicit http client and base URL, for tests.
func newClientWithBase(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	maxRetries, baseBackoff := getRetryConfig()
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

// SearchByGenre searches Spotify for tracks tagged with the genre and maps
// them to domain tracks.
func (c *Client) SearchByGenre(ctx context.Context, genre string, limit int) ([]domain.Track, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	q := url.Values{}
	q.Set("q", fmt.Sprintf("genre:%q", genre))
	q.Set("type", "track")
	q.Set("limit", fmt.Sprintf("%d", limit))

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify adapter: status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}

	tracks := make([]domain.Track, 0, len(parsed.Tracks.Items))
	for _, wt := range parsed.Tracks.Items {
		tracks = append(tracks, mapTrackToDomain(wt))
	}
	if len(tracks) == 0 {
		return nil, ports.ErrNoTracks
	}
	return tracks, nil
}
