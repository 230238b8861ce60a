// Package cpython fetches the CPython release manifest published by the
// actions/python-versions repository.
//
// The manifest lists every CPython build the GitHub toolcache knows about,
// including pre-releases and the free-threaded variants that ship as extra
// file entries with a "-freethreaded" arch suffix.
package cpython

import (
	"context"
	"fmt"
	"time"

	"github.com/matrixforge/pymatrix/pkg/integrations"
)

// DefaultManifestURL is the canonical location of the versions manifest.
const DefaultManifestURL = "https://raw.githubusercontent.com/actions/python-versions/main/versions-manifest.json"

// File describes one downloadable build of a release.
type File struct {
	Filename    string `json:"filename"`
	Arch        string `json:"arch"`     // e.g. "x64", "arm64", "x64-freethreaded"
	Platform    string `json:"platform"` // e.g. "linux", "darwin", "win32"
	DownloadURL string `json:"download_url"`
}

// Entry is one release in the versions manifest.
type Entry struct {
	Version    string `json:"version"`
	Stable     bool   `json:"stable"`
	ReleaseURL string `json:"release_url"`
	Files      []File `json:"files"`
}

// Client fetches the CPython versions manifest.
// It is safe for concurrent use.
type Client struct {
	*integrations.Client
	manifestURL string
}

// NewClient creates a Client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		Client:      integrations.NewClient(timeout, nil),
		manifestURL: DefaultManifestURL,
	}
}

// NewClientWithURL creates a Client against a non-default manifest URL.
// Used by tests and by deployments that mirror the manifest.
func NewClientWithURL(timeout time.Duration, url string) *Client {
	return &Client{
		Client:      integrations.NewClient(timeout, nil),
		manifestURL: url,
	}
}

// FetchManifest retrieves the full list of known CPython releases.
// One GET per call; errors from the base client pass through unwrapped so
// callers can discriminate with errors.Is.
func (c *Client) FetchManifest(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.Get(ctx, c.manifestURL, &entries); err != nil {
		return nil, fmt.Errorf("cpython manifest: %w", err)
	}
	return entries, nil
}
