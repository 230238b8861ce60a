package cpython

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matrixforge/pymatrix/pkg/integrations"
)

const manifestFixture = `[
  {
    "version": "3.13.0",
    "stable": true,
    "release_url": "https://github.com/actions/python-versions/releases/tag/3.13.0",
    "files": [
      {"filename": "python-3.13.0-linux-x64.tar.gz", "arch": "x64", "platform": "linux", "download_url": "https://example.invalid/a"},
      {"filename": "python-3.13.0-linux-x64-freethreaded.tar.gz", "arch": "x64-freethreaded", "platform": "linux", "download_url": "https://example.invalid/b"},
      {"filename": "python-3.13.0-darwin-arm64.tar.gz", "arch": "arm64", "platform": "darwin", "download_url": "https://example.invalid/c"}
    ]
  },
  {
    "version": "3.14.0-rc.2",
    "stable": false,
    "files": [
      {"filename": "python-3.14.0rc2-linux-x64.tar.gz", "arch": "x64", "platform": "linux", "download_url": "https://example.invalid/d"}
    ]
  }
]`

func TestClient_FetchManifest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(manifestFixture))
	}))
	defer server.Close()

	c := NewClientWithURL(time.Second, server.URL)

	entries, err := c.FetchManifest(context.Background())
	if err != nil {
		t.Fatalf("FetchManifest failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Version != "3.13.0" || !entries[0].Stable {
		t.Errorf("entry 0 = %+v, want stable 3.13.0", entries[0])
	}
	if len(entries[0].Files) != 3 {
		t.Errorf("expected 3 files for 3.13.0, got %d", len(entries[0].Files))
	}
	if entries[0].Files[1].Arch != "x64-freethreaded" {
		t.Errorf("file arch = %q, want x64-freethreaded", entries[0].Files[1].Arch)
	}
	if entries[1].Stable {
		t.Error("3.14.0-rc.2 must be unstable")
	}
}

func TestClient_FetchManifest_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClientWithURL(time.Second, server.URL)

	_, err := c.FetchManifest(context.Background())
	if !errors.Is(err, integrations.ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}
