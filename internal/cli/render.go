package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matrixforge/pymatrix/pkg/matrix"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

// entryRow is the JSON projection of a matrix entry. The python-version key
// is what actions/setup-python consumes.
type entryRow struct {
	Runner        string `json:"runner"`
	PythonVersion string `json:"python-version"`
}

// renderEntries writes entries to w in the given format, preserving the
// resolved order.
func renderEntries(w io.Writer, entries []matrix.Entry, format string) error {
	if format == formatTable {
		return renderTable(w, entries)
	}
	rows := make([]entryRow, len(entries))
	for i, e := range entries {
		rows[i] = entryRow{Runner: e.Runner, PythonVersion: e.Version}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// renderTable writes entries as a bordered table for interactive use.
func renderTable(w io.Writer, entries []matrix.Entry) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			return styleTableCell
		}).
		Headers("RUNNER", "IMPLEMENTATION", "PYTHON")
	for _, e := range entries {
		t.Row(e.Runner, e.Implementation, e.Version)
	}
	_, err := fmt.Fprintln(w, t)
	return err
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
