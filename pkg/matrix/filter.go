package matrix

import "github.com/matrixforge/pymatrix/pkg/platform"

// Compatible reports whether rel publishes a build file for the runner's
// (OS, architecture) pair.
//
// The freethreaded flag selects which variant is being checked: the
// standard build (false) or the free-threaded build (true). A release with
// zero file descriptors, typically from a partially failed metadata fetch,
// is incompatible with every runner: the filter fails closed.
//
// Callers that run with platform checking disabled skip this function
// entirely per the constraint contract.
func Compatible(rel Release, r platform.Runner, freethreaded bool) bool {
	for _, f := range rel.Files {
		if f.Freethreaded() != freethreaded {
			continue
		}
		if r.MatchesFile(f.Platform, f.Arch) {
			return true
		}
	}
	return false
}
