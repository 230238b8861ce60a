package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single index fetch. Callers can shorten it further
// through the request context.
const DefaultTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when the remote index does not exist (404).
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// non-OK responses).
	ErrNetwork = errors.New("network error")

	// ErrDecode is returned when an index response cannot be parsed.
	ErrDecode = errors.New("decode error")
)

const userAgent = "pymatrix/1.0 (https://github.com/matrixforge/pymatrix)"

// Client provides shared HTTP functionality for the release-index clients.
// It applies a request timeout and common headers. There is deliberately no
// caching and no retry layer: every run queries the indexes fresh, and a
// failed fetch is reported to the caller exactly once.
//
// Client is safe for concurrent use.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given per-request timeout.
// A non-positive timeout falls back to [DefaultTimeout]. Pass nil for
// headers if no defaults are needed.
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		headers: headers,
	}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
//
// Returns [ErrNotFound] for 404 responses, [ErrNetwork] for transport
// failures and other non-OK statuses, and [ErrDecode] when the body is not
// valid JSON for v. Context cancellation surfaces as the context's error.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
