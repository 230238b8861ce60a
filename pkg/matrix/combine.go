package matrix

import (
	"sort"
	"strings"

	"github.com/matrixforge/pymatrix/pkg/pyversion"
)

// GitHubMatrix is the matrix object a GitHub Actions workflow consumes:
// the full cross product of runners and versions, minus the exclude list.
type GitHubMatrix struct {
	Runner        []string       `json:"runner"`
	PythonVersion []string       `json:"python-version"`
	Exclude       []ExcludeEntry `json:"exclude"`
}

// ExcludeEntry names one (runner, version) pair that must not run because
// the runner's resolved version list does not contain the version.
type ExcludeEntry struct {
	Runner        string `json:"runner"`
	PythonVersion string `json:"python-version"`
}

// Combine merges per-runner version lists into one GitHubMatrix.
//
// The runners slice fixes the runner order; perRunner maps each runner to
// the version display strings resolved for it. The combined version axis is
// the union of all lists in ascending version order, and every pair where a
// runner lacks a version lands on the exclude list. The result is
// deterministic for identical inputs.
func Combine(runners []string, perRunner map[string][]string) GitHubMatrix {
	union := make(map[string]bool)
	for _, runner := range runners {
		for _, v := range perRunner[runner] {
			union[v] = true
		}
	}

	versions := make([]string, 0, len(union))
	for v := range union {
		versions = append(versions, v)
	}
	sortDisplayVersions(versions)

	m := GitHubMatrix{
		Runner:        append([]string(nil), runners...),
		PythonVersion: versions,
		Exclude:       []ExcludeEntry{},
	}

	has := make(map[string]map[string]bool, len(runners))
	for _, runner := range runners {
		set := make(map[string]bool, len(perRunner[runner]))
		for _, v := range perRunner[runner] {
			set[v] = true
		}
		has[runner] = set
	}

	for _, v := range versions {
		for _, runner := range runners {
			if !has[runner][v] {
				m.Exclude = append(m.Exclude, ExcludeEntry{Runner: runner, PythonVersion: v})
			}
		}
	}
	return m
}

// sortDisplayVersions orders display strings ascending: parseable versions
// first (implementation prefixes like "pypy-" group after bare CPython
// versions), unparseable strings last in lexical order.
func sortDisplayVersions(versions []string) {
	type key struct {
		display string
		prefix  string
		version pyversion.Version
		parsed  bool
	}

	keys := make([]key, len(versions))
	for i, d := range versions {
		k := key{display: d}
		s := d
		if idx := strings.LastIndex(d, "-"); idx > 0 {
			if _, err := pyversion.Parse(d[idx+1:]); err == nil {
				k.prefix = d[:idx+1]
				s = d[idx+1:]
			}
		}
		if v, err := pyversion.Parse(s); err == nil {
			k.version = v
			k.parsed = true
		}
		keys[i] = k
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		if !a.parsed {
			return a.display < b.display
		}
		if a.prefix != b.prefix {
			return a.prefix < b.prefix
		}
		if c := a.version.Compare(b.version); c != 0 {
			return c < 0
		}
		return a.display < b.display
	})

	for i, k := range keys {
		versions[i] = k.display
	}
}
