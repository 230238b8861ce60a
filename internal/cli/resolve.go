package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matrixforge/pymatrix/pkg/integrations"
	"github.com/matrixforge/pymatrix/pkg/matrix"
)

// resolveOpts holds the command-line flags for the resolve command.
// These options control the version range, which variants are included, and
// how the resulting matrix is rendered.
type resolveOpts struct {
	runners         []string      // runner labels, in output order
	minVersion      string        // lower bound or "auto"
	maxVersion      string        // upper bound or "auto"
	prereleases     bool          // include pre-release versions
	freethreaded    bool          // add free-threaded variants
	implementations []string      // implementation names, in output order
	checkPlatform   bool          // require a published build per runner
	timeout         time.Duration // per-fetch timeout
	output          string        // output file path (stdout if empty)
	format          string        // "json", "table", or auto-detect if empty
	configPath      string        // TOML defaults file
}

// newResolveCmd creates the resolve command.
//
// Default options:
//   - min/max: "auto" (oldest supported line through newest published)
//   - check-platform: true (drop versions without a build for the runner)
//   - timeout: the shared index client default
func newResolveCmd() *cobra.Command {
	opts := resolveOpts{
		minVersion:    matrix.Auto,
		maxVersion:    matrix.Auto,
		checkPlatform: true,
		timeout:       integrations.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the runner × Python-version build matrix",
		Long: `Resolve the build matrix from the live release indexes.

Version bounds default to "auto": the minimum becomes the oldest release line
still supported per endoflife.date, the maximum the newest published version.
Explicit bounds are inclusive on both ends.

Examples:
  pymatrix resolve --runner ubuntu-latest
  pymatrix resolve --runner ubuntu-latest --runner macos-14 --min 3.10
  pymatrix resolve --runner windows-latest --implementation pypy --pre-releases
  pymatrix resolve --runner ubuntu-24.04 --freethreaded --format json`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if err := opts.applyConfig(c.Flags().Changed); err != nil {
				return err
			}
			return runResolve(c.Context(), &opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.runners, "runner", "r", nil, "runner label (repeatable, ordered)")
	cmd.Flags().StringVar(&opts.minVersion, "min", opts.minVersion, `minimum version (inclusive) or "auto"`)
	cmd.Flags().StringVar(&opts.maxVersion, "max", opts.maxVersion, `maximum version (inclusive) or "auto"`)
	cmd.Flags().BoolVar(&opts.prereleases, "pre-releases", false, "include pre-release versions")
	cmd.Flags().BoolVar(&opts.freethreaded, "freethreaded", false, "add free-threaded variants where builds exist")
	cmd.Flags().StringArrayVarP(&opts.implementations, "implementation", "i", nil, "implementation (repeatable, default cpython)")
	cmd.Flags().BoolVar(&opts.checkPlatform, "check-platform", opts.checkPlatform, "drop versions without a build for the runner")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-fetch timeout")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json or table (default: table on a TTY)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML file providing flag defaults")

	return cmd
}

// resolveFormat validates the --format flag and auto-detects the format when
// it is unset: a table when writing to an interactive terminal, JSON
// everywhere else (files, pipes).
func (o *resolveOpts) resolveFormat() (string, error) {
	switch o.format {
	case formatJSON, formatTable:
		return o.format, nil
	case "":
	default:
		return "", fmt.Errorf("unknown format: %s (available: %s, %s)", o.format, formatJSON, formatTable)
	}
	if o.output == "" && isatty.IsTerminal(os.Stdout.Fd()) {
		return formatTable, nil
	}
	return formatJSON, nil
}

// runResolve builds the matrix from the live indexes and renders it.
func runResolve(ctx context.Context, opts *resolveOpts) error {
	logger := loggerFromContext(ctx)

	format, err := opts.resolveFormat()
	if err != nil {
		return err
	}

	builder := matrix.NewBuilder(matrix.Options{
		Timeout: opts.timeout,
		Logger:  logger,
	})

	logger.Infof("Resolving matrix for %d runner(s)", len(opts.runners))
	prog := newProgress(logger)
	entries, err := builder.Build(ctx, matrix.Constraint{
		MinVersion:          opts.minVersion,
		MaxVersion:          opts.maxVersion,
		IncludePrereleases:  opts.prereleases,
		IncludeFreethreaded: opts.freethreaded,
		Implementations:     opts.implementations,
		Runners:             opts.runners,
		CheckPlatform:       opts.checkPlatform,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d matrix entries", len(entries)))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := renderEntries(out, entries, format); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Infof("Wrote matrix to %s", opts.output)
	}
	return nil
}
