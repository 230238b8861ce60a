package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matrixforge/pymatrix/pkg/matrix"
)

// newCombineCmd creates the combine command. It merges per-runner version
// lists, produced by separate resolve runs, into a single GitHub Actions
// matrix object with an exclude list for versions missing on some runners.
func newCombineCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "combine <dir>",
		Short: "Combine per-runner version lists into a GitHub Actions matrix",
		Long: `Combine per-runner version lists into a single GitHub Actions matrix.

The directory must contain one <runner>.json file per runner, each holding a
JSON array of version strings. The output is a matrix object with "runner",
"python-version" and "exclude" keys, ready for fromJSON in a workflow.

Example:
  pymatrix resolve -r ubuntu-latest -o lists/ubuntu-latest.json
  pymatrix resolve -r windows-latest -o lists/windows-latest.json
  pymatrix combine lists`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCombine(c.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runCombine reads the per-runner lists from dir and writes the combined
// matrix as JSON. Runner order follows the sorted file names.
func runCombine(ctx context.Context, dir, output string) error {
	logger := loggerFromContext(ctx)

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var runners []string
	perRunner := make(map[string][]string)
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		runner := strings.TrimSuffix(de.Name(), ".json")

		data, err := os.ReadFile(filepath.Join(dir, de.Name()))
		if err != nil {
			return err
		}
		var versions []string
		if err := json.Unmarshal(data, &versions); err != nil {
			return fmt.Errorf("%s: %w", de.Name(), err)
		}
		runners = append(runners, runner)
		perRunner[runner] = versions
	}
	if len(runners) == 0 {
		return fmt.Errorf("no per-runner version lists (*.json) in %s", dir)
	}

	m := matrix.Combine(runners, perRunner)
	logger.Infof("Combined %d runner(s): %d version(s), %d exclude(s)",
		len(m.Runner), len(m.PythonVersion), len(m.Exclude))

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return err
	}
	if output != "" {
		logger.Infof("Wrote matrix to %s", output)
	}
	return nil
}
