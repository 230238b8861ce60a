package pypy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const indexFixture = `[
  {
    "pypy_version": "7.3.17",
    "python_version": "3.10.14",
    "stable": true,
    "latest_pypy": true,
    "files": [
      {"filename": "pypy3.10-v7.3.17-linux64.tar.bz2", "arch": "x64", "platform": "linux", "download_url": "https://example.invalid/a"},
      {"filename": "pypy3.10-v7.3.17-aarch64.tar.bz2", "arch": "aarch64", "platform": "linux", "download_url": "https://example.invalid/b"}
    ]
  },
  {
    "pypy_version": "7.3.17",
    "python_version": "3.9.19",
    "stable": true,
    "latest_pypy": false,
    "files": [
      {"filename": "pypy3.9-v7.3.17-win64.zip", "arch": "x64", "platform": "win64", "download_url": "https://example.invalid/c"}
    ]
  }
]`

func TestClient_FetchIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(indexFixture))
	}))
	defer server.Close()

	c := NewClientWithURL(time.Second, server.URL)

	entries, err := c.FetchIndex(context.Background())
	if err != nil {
		t.Fatalf("FetchIndex failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PythonVersion != "3.10.14" {
		t.Errorf("python_version = %q, want 3.10.14", entries[0].PythonVersion)
	}
	if entries[0].PyPyVersion != "7.3.17" {
		t.Errorf("pypy_version = %q, want 7.3.17", entries[0].PyPyVersion)
	}
	if entries[1].Files[0].Platform != "win64" {
		t.Errorf("platform = %q, want win64", entries[1].Files[0].Platform)
	}
}
