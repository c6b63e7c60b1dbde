package coingecko_common

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const (
	// Base URL for public API
	COINGECKO_PUBLIC_URL = "https://api.coingecko.com"

	userAgent = "Mozilla/5.0 Market-History"
)

// joinURL combines a base URL and a path with exactly one slash between them
func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// CoingeckoRequestBuilder assembles an unauthenticated GET against a public CoinGecko endpoint
type CoingeckoRequestBuilder struct {
	endpoint string
	query    url.Values
}

// NewCoingeckoRequestBuilder starts a request for apiPath under baseURL
func NewCoingeckoRequestBuilder(baseURL, apiPath string) *CoingeckoRequestBuilder {
	return &CoingeckoRequestBuilder{
		endpoint: joinURL(baseURL, apiPath),
		query:    url.Values{},
	}
}

// With sets a query parameter, replacing any earlier value
func (rb *CoingeckoRequestBuilder) With(key, value string) *CoingeckoRequestBuilder {
	rb.query.Set(key, value)
	return rb
}

// WithCurrency sets vs_currency. An empty currency leaves the query untouched.
func (rb *CoingeckoRequestBuilder) WithCurrency(currency string) *CoingeckoRequestBuilder {
	if currency != "" {
		rb.query.Set("vs_currency", currency)
	}
	return rb
}

// BuildURL returns the endpoint with its encoded query
func (rb *CoingeckoRequestBuilder) BuildURL() string {
	if len(rb.query) == 0 {
		return rb.endpoint
	}
	return rb.endpoint + "?" + rb.query.Encode()
}

// Build creates a GET request bound to ctx with JSON accept and user agent headers
func (rb *CoingeckoRequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}
