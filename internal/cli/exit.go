package cli

import (
	"context"
	"errors"

	"github.com/matrixforge/pymatrix/pkg/matrix"
	"github.com/matrixforge/pymatrix/pkg/pyversion"
)

// Exit codes returned by ExitCode.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitConstraint = 2
	ExitFetch      = 3
	ExitInterrupt  = 130
)

// ExitCode maps err to the process exit code. Constraint mistakes (bad
// version strings, inverted ranges, empty results, unknown implementations)
// map to 2, fatal index fetch failures to 3, interruption to the shell
// convention 130, anything else to 1.
func ExitCode(err error) int {
	var parseErr *pyversion.ParseError
	var rangeErr *matrix.RangeError
	var fetchErr *matrix.FetchError

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupt
	case errors.As(err, &parseErr), errors.As(err, &rangeErr),
		errors.Is(err, matrix.ErrEmptyMatrix), errors.Is(err, matrix.ErrUnknownImplementation):
		return ExitConstraint
	case errors.As(err, &fetchErr):
		return ExitFetch
	default:
		return ExitFailure
	}
}
