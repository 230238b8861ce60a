package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan = lipgloss.Color("36")  // Teal - headers
	colorGray = lipgloss.Color("245") // Gray - cell text
	colorDim  = lipgloss.Color("240") // Dim gray - borders
)

var (
	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
)
