// Package matrix resolves CI build matrices from live Python release
// indexes.
//
// The engine is a pure compute pipeline over immutable fetched snapshots:
// the [Builder] fetches release catalogs (and, for "auto" minimum bounds,
// end-of-life data) concurrently, resolves the effective version range,
// filters releases by platform compatibility per runner, and emits a
// deterministic, deduplicated list of matrix entries. Nothing is cached and
// nothing is retried; every run queries the indexes fresh.
package matrix

import (
	"context"
	"time"

	"github.com/matrixforge/pymatrix/pkg/platform"
	"github.com/matrixforge/pymatrix/pkg/pyversion"
)

// Auto requests automatic resolution of a version bound: the oldest
// still-supported release line for the minimum, the newest qualifying
// catalog version for the maximum.
const Auto = "auto"

// File is one published build artifact of a release, identified by the
// platform and arch strings of the upstream index.
type File struct {
	Platform string // e.g. "linux", "darwin", "win32"
	Arch     string // e.g. "x64", "aarch64", "x64-freethreaded"
}

// Freethreaded reports whether the file is a free-threaded build.
func (f File) Freethreaded() bool {
	return platform.IsFreethreadedArch(f.Arch)
}

// Release is one published build of an implementation at a version.
// Values are immutable snapshots; a resolution run never mutates them.
type Release struct {
	Version        pyversion.Version // base (non-free-threaded) identity
	Implementation string
	Prerelease     bool
	Files          []File
}

// HasFreethreaded reports whether the release publishes any free-threaded
// build file.
func (r Release) HasFreethreaded() bool {
	for _, f := range r.Files {
		if f.Freethreaded() {
			return true
		}
	}
	return false
}

// EOLRecord is the support status of one minor release line, evaluated at
// fetch time.
type EOLRecord struct {
	Line string    // "3.8"
	Date time.Time // published end-of-life date (zero if none scheduled)
	EOL  bool      // whether the line is end-of-life as of the fetch
}

// Constraint is the user-supplied filter specification for one resolution
// run. It is immutable for the duration of the run.
type Constraint struct {
	MinVersion          string   // explicit version or [Auto]
	MaxVersion          string   // explicit version or [Auto]
	IncludePrereleases  bool
	IncludeFreethreaded bool
	Implementations     []string // ordered; empty means ["cpython"]
	Runners             []string // ordered runner labels
	CheckPlatform       bool
}

// Entry is one output row of the matrix.
type Entry struct {
	Runner         string
	Implementation string
	Version        string // display string, e.g. "3.12.4", "3.13.0t", "pypy-3.10.14"
}

// Catalog lists the known releases of one implementation.
// Implementations wrap the index clients in pkg/integrations.
type Catalog interface {
	// Releases performs one fetch of the full release list. It must honor
	// context cancellation. Errors are not retried; the caller decides
	// whether the failure is fatal.
	Releases(ctx context.Context) ([]Release, error)
}

// EOLSource provides end-of-life records keyed by minor release line.
type EOLSource interface {
	// Records performs one fetch of the support cycles, evaluating EOL
	// status as of fetch time.
	Records(ctx context.Context) (map[string]EOLRecord, error)
}
