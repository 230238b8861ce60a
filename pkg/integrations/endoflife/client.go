// Package endoflife fetches Python release-line support data from the
// endoflife.date API.
//
// The data is informational: the engine only consults it to resolve an
// "auto" minimum version, and a failed fetch degrades to a catalog-based
// fallback instead of failing the run.
package endoflife

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matrixforge/pymatrix/pkg/integrations"
)

// DefaultIndexURL is the endoflife.date endpoint for Python.
const DefaultIndexURL = "https://endoflife.date/api/python.json"

// Cycle is one release line ("3.8", "3.12") and its support window.
type Cycle struct {
	Cycle string  `json:"cycle"`
	EOL   EOLDate `json:"eol"`
}

// IsEOL reports whether the cycle has reached end of life as of now.
// Cycles with no published EOL date are treated as supported.
func (c Cycle) IsEOL(now time.Time) bool {
	if !c.EOL.Known {
		return false
	}
	return !c.EOL.Date.After(now)
}

// EOLDate is the "eol" field of an endoflife.date entry. The API encodes it
// as either an ISO date string or the boolean false (no EOL scheduled).
type EOLDate struct {
	Known bool
	Date  time.Time
}

// UnmarshalJSON accepts both the date-string and boolean encodings.
func (d *EOLDate) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		// false means no EOL date scheduled; true means already EOL with an
		// unspecified date, which the API does not use for Python.
		d.Known = b
		if b {
			d.Date = time.Unix(0, 0).UTC()
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("eol field: %w", err)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("eol date %q: %w", s, err)
	}
	d.Known = true
	d.Date = t
	return nil
}

// Client fetches the Python support cycles.
// It is safe for concurrent use.
type Client struct {
	*integrations.Client
	indexURL string
}

// NewClient creates a Client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		Client:   integrations.NewClient(timeout, nil),
		indexURL: DefaultIndexURL,
	}
}

// NewClientWithURL creates a Client against a non-default endpoint.
func NewClientWithURL(timeout time.Duration, url string) *Client {
	return &Client{
		Client:   integrations.NewClient(timeout, nil),
		indexURL: url,
	}
}

// FetchCycles retrieves all published Python release cycles.
func (c *Client) FetchCycles(ctx context.Context) ([]Cycle, error) {
	var cycles []Cycle
	if err := c.Get(ctx, c.indexURL, &cycles); err != nil {
		return nil, fmt.Errorf("endoflife index: %w", err)
	}
	return cycles, nil
}
