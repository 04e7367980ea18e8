// Package tmdb is a thin client for the provider's movie search endpoint.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultSearchURL is the provider's search endpoint.
const DefaultSearchURL = "https://api.themoviedb.org/3/search/movie"

// DefaultImageBase prefixes backdrop and poster paths.
const DefaultImageBase = "https://image.tmdb.org/t/p/w500"

var (
	// ErrNoResults is returned by First when the provider found nothing.
	ErrNoResults = errors.New("no search results")
	// ErrProviderStatus wraps non-2xx answers from the provider.
	ErrProviderStatus = errors.New("provider returned an error status")
)

// Movie is one search result.  Field names follow the provider's JSON.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date"`
	Overview     string  `json:"overview"`
	BackdropPath string  `json:"backdrop_path"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
}

// Year returns the first four characters of the release date, or "" when
// the provider has no date.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return m.ReleaseDate
	}
	return m.ReleaseDate[:4]
}

// ImageURL joins base with the backdrop path, falling back to the poster
// path.  It is empty when the provider has neither.
func (m Movie) ImageURL(base string) string {
	p := m.BackdropPath
	if p == "" {
		p = m.PosterPath
	}
	if p == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

type searchResponse struct {
	Page    int     `json:"page"`
	Results []Movie `json:"results"`
}

// Client issues search requests with a fixed API key.
type Client struct {
	apiKey     string
	searchURL  string
	imageBase  string
	httpClient *http.Client
}

// Options configures NewClient; zero values pick the defaults.
type Options struct {
	SearchURL  string
	ImageBase  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient creates a search client.
func NewClient(apiKey string, opts Options) *Client {
	if opts.SearchURL == "" {
		opts.SearchURL = DefaultSearchURL
	}
	if opts.ImageBase == "" {
		opts.ImageBase = DefaultImageBase
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		apiKey:     apiKey,
		searchURL:  opts.SearchURL,
		imageBase:  opts.ImageBase,
		httpClient: hc,
	}
}

// ImageBase returns the prefix used for entry image URLs.
func (c *Client) ImageBase() string { return c.imageBase }

// Search performs one GET against the search endpoint and returns the first
// page of results as the provider sent them.
func (c *Client) Search(ctx context.Context, query string) ([]Movie, error) {
	u, err := url.Parse(c.searchURL)
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	q.Set("query", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %d", ErrProviderStatus, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return body.Results, nil
}

// First searches for query and returns the first result.
func (c *Client) First(ctx context.Context, query string) (Movie, error) {
	movies, err := c.Search(ctx, query)
	if err != nil {
		return Movie{}, err
	}
	if len(movies) == 0 {
		return Movie{}, fmt.Errorf("%w for %q", ErrNoResults, query)
	}
	return movies[0], nil
}
