package matrix

import (
	"errors"
	"fmt"

	"github.com/matrixforge/pymatrix/pkg/pyversion"
)

// Sentinel errors for fatal configuration problems.
var (
	// ErrEmptyMatrix is returned when filtering produced zero entries.
	// An empty CI matrix is almost certainly a misconfiguration and must
	// surface instead of silently running zero jobs.
	ErrEmptyMatrix = errors.New("empty matrix")

	// ErrUnknownImplementation is returned for implementation names outside
	// the known set.
	ErrUnknownImplementation = errors.New("unknown implementation")
)

// FetchError reports a failed fetch from a remote index. Catalog failures
// are contained per implementation; the error becomes fatal only when it
// empties the requested implementation set.
type FetchError struct {
	Source         string // "release catalog" or "eol registry"
	Implementation string // empty for the eol registry
	Err            error
}

// Error names the failing source and implementation.
func (e *FetchError) Error() string {
	if e.Implementation != "" {
		return fmt.Sprintf("fetch %s for %s: %v", e.Source, e.Implementation, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// RangeError reports a resolved minimum that exceeds the resolved maximum.
// This signals a misconfiguration; the engine never emits a silently empty
// matrix for an inverted range.
type RangeError struct {
	Implementation string
	Min, Max       pyversion.Version
}

// Error names the implementation and both resolved bounds.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: resolved minimum %s exceeds maximum %s", e.Implementation, e.Min, e.Max)
}
