package matrix

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matrixforge/pymatrix/pkg/integrations/cpython"
	"github.com/matrixforge/pymatrix/pkg/integrations/pypy"
	"github.com/matrixforge/pymatrix/pkg/pyversion"
)

// Implementation is a known Python distribution with its release data
// source and display conventions.
type Implementation struct {
	// Name is the lowercase identifier used in constraints ("cpython").
	Name string

	// Display renders a version for matrix output in the form the CI
	// toolchain expects (e.g. "3.12.4" for CPython, "pypy-3.10.14" for
	// PyPy).
	Display func(v pyversion.Version) string

	// NewCatalog builds the release catalog client for this implementation.
	NewCatalog func(timeout time.Duration) Catalog
}

// CPython is the reference implementation, sourced from the
// actions/python-versions manifest.
var CPython = &Implementation{
	Name:    "cpython",
	Display: func(v pyversion.Version) string { return v.String() },
	NewCatalog: func(timeout time.Duration) Catalog {
		return &cpythonCatalog{cpython.NewClient(timeout)}
	},
}

// PyPy is sourced from the downloads.python.org version index. Releases are
// keyed by the CPython version they implement.
var PyPy = &Implementation{
	Name:    "pypy",
	Display: func(v pyversion.Version) string { return "pypy-" + v.String() },
	NewCatalog: func(timeout time.Duration) Catalog {
		return &pypyCatalog{pypy.NewClient(timeout)}
	},
}

// Known lists the supported implementations.
var Known = []*Implementation{CPython, PyPy}

// Find returns the Implementation with the given name (case-insensitive),
// or nil if it is not known.
func Find(name string) *Implementation {
	for _, impl := range Known {
		if impl.Name == strings.ToLower(strings.TrimSpace(name)) {
			return impl
		}
	}
	return nil
}

type cpythonCatalog struct {
	client *cpython.Client
}

func (c *cpythonCatalog) Releases(ctx context.Context) ([]Release, error) {
	entries, err := c.client.FetchManifest(ctx)
	if err != nil {
		return nil, err
	}

	releases := make([]Release, 0, len(entries))
	for _, e := range entries {
		v, err := pyversion.Parse(e.Version)
		if err != nil {
			return nil, fmt.Errorf("manifest release: %w", err)
		}
		files := make([]File, len(e.Files))
		for i, f := range e.Files {
			files[i] = File{Platform: f.Platform, Arch: f.Arch}
		}
		releases = append(releases, Release{
			Version:        v,
			Implementation: CPython.Name,
			Prerelease:     !e.Stable || v.IsPrerelease(),
			Files:          files,
		})
	}
	return releases, nil
}

type pypyCatalog struct {
	client *pypy.Client
}

func (c *pypyCatalog) Releases(ctx context.Context) ([]Release, error) {
	entries, err := c.client.FetchIndex(ctx)
	if err != nil {
		return nil, err
	}

	releases := make([]Release, 0, len(entries))
	for _, e := range entries {
		v, err := pyversion.Parse(e.PythonVersion)
		if err != nil {
			return nil, fmt.Errorf("index release: %w", err)
		}
		files := make([]File, len(e.Files))
		for i, f := range e.Files {
			files[i] = File{Platform: f.Platform, Arch: f.Arch}
		}
		releases = append(releases, Release{
			Version:        v,
			Implementation: PyPy.Name,
			Prerelease:     !e.Stable || v.IsPrerelease(),
			Files:          files,
		})
	}
	return releases, nil
}
