package coingecko_common

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"
)

// IHttpStatusHandler is an interface for handling HTTP request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
}

// Request statuses reported to IHttpStatusHandler
const (
	StatusSuccess       = "success"
	StatusError         = "error"
	StatusTimeout       = "timeout"
	StatusUpstreamError = "upstream_error"
)

// ClientOptions configures the HTTP client
type ClientOptions struct {
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		LogPrefix:         "HTTP",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// HTTPStatusError is returned when the upstream answers with a non-200 status
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// HTTPClient executes a request exactly once. Callers decide what to do with failures.
type HTTPClient struct {
	Client        *http.Client
	Opts          ClientOptions
	StatusHandler IHttpStatusHandler
}

// NewHTTPClient creates a new HTTP client with connection and request timeouts
func NewHTTPClient(opts ClientOptions, handler IHttpStatusHandler) *HTTPClient {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClient{
		Client:        client,
		Opts:          opts,
		StatusHandler: handler,
	}
}

func (c *HTTPClient) report(status string) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(status)
	}
}

// ExecuteRequest performs req and returns the body of a 200 response.
// A non-200 response yields *HTTPStatusError.
func (c *HTTPClient) ExecuteRequest(req *http.Request) ([]byte, time.Duration, error) {
	requestStart := time.Now()

	resp, err := c.Client.Do(req)
	requestDuration := time.Since(requestStart)
	if err != nil {
		if isTimeout(err) {
			c.report(StatusTimeout)
		} else {
			c.report(StatusError)
		}
		log.Printf("%s: request to %s failed after %.2fs: %v",
			c.Opts.LogPrefix, req.URL.Path, requestDuration.Seconds(), err)
		return nil, requestDuration, fmt.Errorf("request failed after %.2fs: %w", requestDuration.Seconds(), err)
	}
	defer resp.Body.Close()

	body, err := processResponse(resp)
	if err != nil {
		var statusErr *HTTPStatusError
		if errors.As(err, &statusErr) {
			c.report(StatusUpstreamError)
			log.Printf("%s: %s returned status %d", c.Opts.LogPrefix, req.URL.Path, statusErr.StatusCode)
		} else {
			c.report(StatusError)
		}
		return nil, requestDuration, err
	}

	c.report(StatusSuccess)
	return body, requestDuration, nil
}

// processResponse reads and processes the HTTP response
func processResponse(resp *http.Response) ([]byte, error) {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	return responseBody, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
