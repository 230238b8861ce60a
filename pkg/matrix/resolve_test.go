package matrix

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrixforge/pymatrix/pkg/pyversion"
)

func release(version string, prerelease bool, files ...File) Release {
	return Release{
		Version:        pyversion.MustParse(version),
		Implementation: "cpython",
		Prerelease:     prerelease,
		Files:          files,
	}
}

func linuxX64() File { return File{Platform: "linux", Arch: "x64"} }

// eolCatalog covers the common case: 3.7 is EOL, 3.8 through 3.12 are
// still supported.
func eolRecords() map[string]EOLRecord {
	eolDate := time.Date(2023, 6, 27, 0, 0, 0, 0, time.UTC)
	records := map[string]EOLRecord{
		"3.7": {Line: "3.7", Date: eolDate, EOL: true},
	}
	for _, line := range []string{"3.8", "3.9", "3.10", "3.11", "3.12"} {
		records[line] = EOLRecord{Line: line, EOL: false}
	}
	return records
}

func eolTestCatalog() []Release {
	return []Release{
		release("3.7.9", false, linuxX64()),
		release("3.7.17", false, linuxX64()),
		release("3.8.0", false, linuxX64()),
		release("3.8.18", false, linuxX64()),
		release("3.12.4", false, linuxX64()),
		release("3.13.0rc1", true, linuxX64()),
	}
}

func TestResolveBounds_AutoAuto(t *testing.T) {
	c := Constraint{MinVersion: Auto, MaxVersion: Auto}

	min, max, err := ResolveBounds(c, "cpython", eolTestCatalog(), eolRecords())
	require.NoError(t, err)

	assert.Equal(t, "3.8.0", min.String(), "minimum must be the oldest non-EOL line's lowest micro")
	assert.Equal(t, "3.12.4", max.String(), "maximum must skip pre-releases by default")
}

func TestResolveBounds_AutoMaxIncludesPrereleases(t *testing.T) {
	c := Constraint{MinVersion: Auto, MaxVersion: Auto, IncludePrereleases: true}

	_, max, err := ResolveBounds(c, "cpython", eolTestCatalog(), eolRecords())
	require.NoError(t, err)

	assert.Equal(t, "3.13.0rc1", max.String())
}

func TestResolveBounds_EOLFallback(t *testing.T) {
	// A nil EOL snapshot (registry unreachable) must not fail the run;
	// auto minimum degrades to the oldest catalog version.
	c := Constraint{MinVersion: Auto, MaxVersion: Auto}

	min, _, err := ResolveBounds(c, "cpython", eolTestCatalog(), nil)
	require.NoError(t, err)

	assert.Equal(t, "3.7.9", min.String())
}

func TestResolveBounds_SupportedLineAbsentFromCatalog(t *testing.T) {
	// Oldest supported line is 3.8 but the catalog starts at 3.9: the
	// minimum lands on the lowest catalog version above the line.
	catalog := []Release{
		release("3.9.1", false, linuxX64()),
		release("3.9.0", false, linuxX64()),
		release("3.12.4", false, linuxX64()),
	}
	c := Constraint{MinVersion: Auto, MaxVersion: Auto}

	min, _, err := ResolveBounds(c, "cpython", catalog, eolRecords())
	require.NoError(t, err)

	assert.Equal(t, "3.9.0", min.String())
}

func TestResolveBounds_Explicit(t *testing.T) {
	c := Constraint{MinVersion: "3.8", MaxVersion: "3.9.0"}

	min, max, err := ResolveBounds(c, "cpython", eolTestCatalog(), nil)
	require.NoError(t, err)

	assert.Equal(t, "3.8", min.String())
	assert.Equal(t, "3.9.0", max.String())
}

func TestResolveBounds_MalformedBound(t *testing.T) {
	c := Constraint{MinVersion: "three.eight", MaxVersion: Auto}

	_, _, err := ResolveBounds(c, "cpython", eolTestCatalog(), nil)

	var perr *pyversion.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "min-version")
	assert.Contains(t, err.Error(), "three.eight")
}

func TestResolveBounds_InvertedRange(t *testing.T) {
	c := Constraint{MinVersion: "3.12", MaxVersion: "3.8"}

	_, _, err := ResolveBounds(c, "cpython", eolTestCatalog(), nil)

	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "cpython", rerr.Implementation)
	assert.Contains(t, err.Error(), "3.12")
	assert.Contains(t, err.Error(), "3.8")
}

func TestResolveBounds_EmptyCatalog(t *testing.T) {
	c := Constraint{MinVersion: Auto, MaxVersion: Auto}

	_, _, err := ResolveBounds(c, "cpython", nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyMatrix))
}
