package guessapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"submatch/internal/mediaerr"
)

// MovieGuess is the service's best match for a release filename.
type MovieGuess struct {
	IMDBID string `json:"imdb_id"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Kind   string `json:"kind"`
}

// Usable reports whether the guess carries enough identity to act on.
func (g *MovieGuess) Usable() bool {
	return g != nil && strings.TrimSpace(g.IMDBID) != "" && strings.TrimSpace(g.Title) != ""
}

// Episode is one entry of a series' episode listing.
type Episode struct {
	IMDBID  string `json:"imdb_id"`
	Season  int    `json:"season"`
	Episode int    `json:"episode"`
	Title   string `json:"title"`
}

// FeatureSet is the full feature record behind an IMDB id.
type FeatureSet struct {
	IMDBID   string    `json:"imdb_id"`
	Title    string    `json:"title"`
	Year     string    `json:"year"`
	Kind     string    `json:"kind"`
	Episodes []Episode `json:"episodes"`
}

// EpisodeAt returns the listing entry for season/episode, if present.
func (f *FeatureSet) EpisodeAt(season, episode int) (Episode, bool) {
	if f == nil {
		return Episode{}, false
	}
	for _, ep := range f.Episodes {
		if ep.Season == season && ep.Episode == episode {
			return ep, true
		}
	}
	return Episode{}, false
}

// Guesser defines the guessing-service operations used by identification.
type Guesser interface {
	GuessMovie(ctx context.Context, query string) (*MovieGuess, error)
	FeaturesByID(ctx context.Context, imdbID string) (*FeatureSet, error)
}

// Client talks to the guessing service over HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

var _ Guesser = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a guessing-service client.
func New(apiKey, baseURL, userAgent string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("guess api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("guess api base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  strings.TrimSpace(userAgent),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// GuessMovie asks the service for its best match for a release filename.
// A nil guess with nil error means the service definitively had no match.
func (c *Client) GuessMovie(ctx context.Context, query string) (*MovieGuess, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)

	var payload MovieGuess
	found, err := c.get(ctx, "/api/guess", params, &payload)
	if err != nil {
		return nil, err
	}
	if !found || !payload.Usable() {
		return nil, nil
	}
	return &payload, nil
}

// FeaturesByID expands an IMDB id into the full feature record. A nil
// set with nil error means the id is unknown to the service.
func (c *Client) FeaturesByID(ctx context.Context, imdbID string) (*FeatureSet, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, errors.New("imdb id must not be empty")
	}
	params := url.Values{}
	params.Set("imdb_id", imdbID)

	var payload FeatureSet
	found, err := c.get(ctx, "/api/features", params, &payload)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &payload, nil
}

// get performs one GET, decoding the body into out. found=false reports a
// 404, which the service uses for "no such record".
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) (bool, error) {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return false, fmt.Errorf("parse guess api url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return false, mediaerr.Wrap(mediaerr.ErrNetwork, "guessapi", path,
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, nil
	case http.StatusTooManyRequests:
		return false, mediaerr.Wrap(mediaerr.ErrRateLimited, "guessapi", path,
			fmt.Sprintf("service throttled the request (latency=%v)", latency), nil)
	default:
		return false, mediaerr.Wrap(mediaerr.ErrProtocol, "guessapi", path,
			fmt.Sprintf("service returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, mediaerr.Wrap(mediaerr.ErrProtocol, "guessapi", path, "decode response", err)
	}
	return true, nil
}
