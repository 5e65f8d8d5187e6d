// Package overpass fetches points of interest from an Overpass-compatible
// OpenStreetMap query service.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Center is the computed centroid of a way or relation.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Element is one raw point of interest as returned by the service.
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *Center           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

// Fetcher queries nearby points of interest for a category tag.
type Fetcher interface {
	FetchNearby(ctx context.Context, lat, lon, radiusKM float64, tag string) ([]Element, error)
}

// Client posts Overpass QL queries to the interpreter endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
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

// NewClient creates a client against the given interpreter endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   endpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type interpreterResponse struct {
	Elements []Element `json:"elements"`
}

// FetchNearby queries node, way and relation geometries carrying the tag
// within radiusKM of the coordinate. Element order is whatever the service
// returns. The query carries the service's own 25 second timeout; there is no
// retry.
func (c *Client) FetchNearby(ctx context.Context, lat, lon, radiusKM float64, tag string) ([]Element, error) {
	radiusM := radiusKM * 1000

	var q strings.Builder
	q.WriteString("[out:json][timeout:25];\n(\n")
	for _, geom := range []string{"node", "way", "relation"} {
		fmt.Fprintf(&q, "  %s[%s](around:%.0f,%f,%f);\n", geom, tag, radiusM, lat, lon)
	}
	q.WriteString(");\nout center meta;")

	form := url.Values{"data": {q.String()}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("overpass: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass: unexpected status %d", resp.StatusCode)
	}

	var payload interpreterResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("overpass: decode response: %w", err)
	}

	return payload.Elements, nil
}

var _ Fetcher = (*Client)(nil)
