package coingecko_common

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURL_TrimsSlashes(t *testing.T) {
	assert.Equal(t, "https://example.com/api/v3/ping", joinURL("https://example.com/", "/api/v3/ping"))
	assert.Equal(t, "https://example.com/api/v3/ping", joinURL("https://example.com", "api/v3/ping"))
}

func TestCoingeckoRequestBuilder_BuildURL(t *testing.T) {
	rb := NewCoingeckoRequestBuilder("https://example.com", "/api/v3/coins/nexo/market_chart").
		WithCurrency("eur").
		With("days", "30")

	parsed, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)

	assert.Equal(t, "/api/v3/coins/nexo/market_chart", parsed.Path)
	assert.Equal(t, "eur", parsed.Query().Get("vs_currency"))
	assert.Equal(t, "30", parsed.Query().Get("days"))
}

func TestCoingeckoRequestBuilder_WithReplacesValue(t *testing.T) {
	rb := NewCoingeckoRequestBuilder("https://example.com", "/ping").
		With("days", "7").
		With("days", "30")

	assert.Equal(t, "https://example.com/ping?days=30", rb.BuildURL())
}

func TestCoingeckoRequestBuilder_EmptyCurrencyIgnored(t *testing.T) {
	rb := NewCoingeckoRequestBuilder("https://example.com", "/ping").WithCurrency("")
	assert.Equal(t, "https://example.com/ping", rb.BuildURL())
}

func TestCoingeckoRequestBuilder_Build(t *testing.T) {
	req, err := NewCoingeckoRequestBuilder("https://example.com", "/ping").Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "Mozilla/5.0 Market-History", req.Header.Get("User-Agent"))
	assert.Empty(t, req.Header.Get("x-cg-pro-api-key"))
}
