package matrix

import (
	"fmt"

	"github.com/matrixforge/pymatrix/pkg/pyversion"
)

// ResolveBounds computes the effective version range for one implementation.
//
// It is a pure function over the constraint and the fetched snapshots, so
// resolution is testable without network access.
//
// Rules:
//   - An explicit bound is parsed verbatim; malformed input fails with a
//     *pyversion.ParseError naming the constraint field.
//   - min == "auto": the oldest release line that is not end-of-life,
//     translated to that line's lowest catalog version. With no usable EOL
//     snapshot (nil map, fetch failed) the minimum falls back to the oldest
//     catalog version.
//   - max == "auto": the highest catalog version that passes the
//     pre-release inclusion flag. Free-threaded variants share the range of
//     their base release and do not affect the bound.
//
// A resolved minimum above the resolved maximum returns a *RangeError.
func ResolveBounds(c Constraint, impl string, releases []Release, eol map[string]EOLRecord) (min, max pyversion.Version, err error) {
	if len(releases) == 0 {
		return min, max, fmt.Errorf("%s: release catalog is empty: %w", impl, ErrEmptyMatrix)
	}

	if c.MinVersion == Auto {
		min = autoMin(releases, eol)
	} else {
		min, err = pyversion.Parse(c.MinVersion)
		if err != nil {
			return min, max, fmt.Errorf("constraint field min-version: %w", err)
		}
	}

	if c.MaxVersion == Auto {
		max = autoMax(releases, c.IncludePrereleases)
	} else {
		max, err = pyversion.Parse(c.MaxVersion)
		if err != nil {
			return min, max, fmt.Errorf("constraint field max-version: %w", err)
		}
	}

	if max.Less(min) {
		return min, max, &RangeError{Implementation: impl, Min: min, Max: max}
	}
	return min, max, nil
}

// autoMin picks the lowest catalog version on the oldest still-supported
// release line, falling back to the oldest catalog version when no EOL data
// is available or the supported line has no catalog releases.
func autoMin(releases []Release, eol map[string]EOLRecord) pyversion.Version {
	oldest := oldestVersion(releases)
	if len(eol) == 0 {
		return oldest
	}

	var floor pyversion.Version
	haveFloor := false
	for line, rec := range eol {
		if rec.EOL {
			continue
		}
		lv, err := pyversion.Parse(line)
		if err != nil {
			continue
		}
		if !haveFloor || lv.Less(floor) {
			floor = lv
			haveFloor = true
		}
	}
	if !haveFloor {
		return oldest
	}

	// Lowest catalog version on or above the supported line.
	var min pyversion.Version
	haveMin := false
	for _, r := range releases {
		if r.Version.Less(floor) {
			continue
		}
		if !haveMin || r.Version.Less(min) {
			min = r.Version
			haveMin = true
		}
	}
	if !haveMin {
		return oldest
	}
	return min
}

// autoMax picks the highest catalog version passing the pre-release flag.
func autoMax(releases []Release, includePrereleases bool) pyversion.Version {
	var max pyversion.Version
	haveMax := false
	for _, r := range releases {
		if r.Prerelease && !includePrereleases {
			continue
		}
		if !haveMax || max.Less(r.Version) {
			max = r.Version
			haveMax = true
		}
	}
	if !haveMax {
		// Nothing qualifies; return the overall highest so the range filter
		// (not the bound) reports the empty result.
		for _, r := range releases {
			if max.Less(r.Version) {
				max = r.Version
			}
		}
	}
	return max
}

func oldestVersion(releases []Release) pyversion.Version {
	min := releases[0].Version
	for _, r := range releases[1:] {
		if r.Version.Less(min) {
			min = r.Version
		}
	}
	return min
}
