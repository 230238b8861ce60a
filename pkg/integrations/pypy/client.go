// Package pypy fetches the PyPy version index from downloads.python.org.
//
// Each index entry describes one PyPy build and names the CPython version it
// implements; the engine keys releases on that Python version. PyPy
// publishes no free-threaded builds.
package pypy

import (
	"context"
	"fmt"
	"time"

	"github.com/matrixforge/pymatrix/pkg/integrations"
)

// DefaultIndexURL is the canonical location of the PyPy version index.
const DefaultIndexURL = "https://downloads.python.org/pypy/versions.json"

// File describes one downloadable PyPy build.
type File struct {
	Filename    string `json:"filename"`
	Arch        string `json:"arch"`     // e.g. "x64", "aarch64", "i686"
	Platform    string `json:"platform"` // e.g. "linux", "darwin", "win64"
	DownloadURL string `json:"download_url"`
}

// Entry is one release in the PyPy version index.
type Entry struct {
	PyPyVersion   string `json:"pypy_version"`
	PythonVersion string `json:"python_version"`
	Stable        bool   `json:"stable"`
	LatestPyPy    bool   `json:"latest_pypy"`
	Files         []File `json:"files"`
}

// Client fetches the PyPy version index.
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

// NewClientWithURL creates a Client against a non-default index URL.
func NewClientWithURL(timeout time.Duration, url string) *Client {
	return &Client{
		Client:   integrations.NewClient(timeout, nil),
		indexURL: url,
	}
}

// FetchIndex retrieves the full list of known PyPy releases.
func (c *Client) FetchIndex(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.Get(ctx, c.indexURL, &entries); err != nil {
		return nil, fmt.Errorf("pypy index: %w", err)
	}
	return entries, nil
}
