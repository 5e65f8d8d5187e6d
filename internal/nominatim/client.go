// Package nominatim resolves free-text locations to coordinates using a
// Nominatim-compatible geocoding service.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoMatch indicates the service returned no result for the query.
var ErrNoMatch = errors.New("nominatim: no match for location")

// Location is a resolved latitude/longitude pair.
type Location struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-text location to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (Location, error)
}

// Client queries the Nominatim search endpoint. Requests are rate limited;
// the public instance allows at most one request per second.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit overrides the requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a geocoding client against the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		userAgent:  "leadscout-api/1.0",
		limiter:    rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode performs a single best-match lookup. It returns ErrNoMatch when the
// result set is empty; any other error means the service was unreachable or
// returned a malformed payload.
func (c *Client) Geocode(ctx context.Context, location string) (Location, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Location{}, fmt.Errorf("nominatim: rate limit: %w", err)
	}

	params := url.Values{
		"format": {"json"},
		"q":      {location},
		"limit":  {"1"},
	}
	reqURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Location{}, fmt.Errorf("nominatim: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("nominatim: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Location{}, fmt.Errorf("nominatim: decode response: %w", err)
	}
	if len(results) == 0 {
		return Location{}, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Location{}, fmt.Errorf("nominatim: parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Location{}, fmt.Errorf("nominatim: parse lon: %w", err)
	}

	return Location{Lat: lat, Lon: lon}, nil
}

var _ Geocoder = (*Client)(nil)
