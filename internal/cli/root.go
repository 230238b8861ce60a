package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matrixforge/pymatrix/pkg/buildinfo"
)

// Execute runs the pymatrix CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (resolve,
// combine, completion), configures logging based on the --verbose flag, and
// executes the command tree against ctx so signal cancellation propagates
// into every in-flight index fetch.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:           "pymatrix",
		Short:         "pymatrix resolves CI build matrices from live Python release indexes",
		Long:          `pymatrix is a CLI tool that resolves runner × Python-version build matrices from the live release indexes (the actions/python-versions manifest, the PyPy downloads index, and endoflife.date), so CI pipelines never hardcode version lists.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newCombineCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
