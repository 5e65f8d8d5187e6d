// Package opencorporates looks up basic company-registry data by name.
package opencorporates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/leadscout/leadgen-api/internal/entity"
)

// Lookup searches the registry for the closest match to a company name.
type Lookup interface {
	LookupCompany(ctx context.Context, name string) (entity.RegistryInfo, error)
}

// Client queries the company search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
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

// NewClient creates a registry client against the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Results struct {
		Companies []struct {
			Company struct {
				Name              string `json:"name"`
				CompanyType       string `json:"company_type"`
				CurrentStatus     string `json:"current_status"`
				RegisteredAddress string `json:"registered_address_in_full"`
				IncorporationDate string `json:"incorporation_date"`
			} `json:"company"`
		} `json:"companies"`
	} `json:"results"`
}

// LookupCompany returns the first ranked match for the name, or an empty
// snapshot when the result set is empty. Callers are expected to treat any
// error as "no registry data" as well.
func (c *Client) LookupCompany(ctx context.Context, name string) (entity.RegistryInfo, error) {
	params := url.Values{
		"q":      {name},
		"format": {"json"},
		"limit":  {"1"},
	}
	reqURL := c.baseURL + "/companies/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return entity.RegistryInfo{}, fmt.Errorf("registry: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.RegistryInfo{}, fmt.Errorf("registry: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.RegistryInfo{}, fmt.Errorf("registry: unexpected status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return entity.RegistryInfo{}, fmt.Errorf("registry: decode response: %w", err)
	}
	if len(payload.Results.Companies) == 0 {
		return entity.RegistryInfo{}, nil
	}

	company := payload.Results.Companies[0].Company
	status := company.CurrentStatus
	if status == "" {
		status = company.CompanyType
	}

	return entity.RegistryInfo{
		Name:              company.Name,
		Status:            status,
		Address:           company.RegisteredAddress,
		IncorporationDate: company.IncorporationDate,
	}, nil
}

var _ Lookup = (*Client)(nil)
