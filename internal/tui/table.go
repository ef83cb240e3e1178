// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = cellStyle.Foreground(lipgloss.Color("#6B7280"))
)

// TableOptions configures a rendered table.
type TableOptions struct {
	// Headers are the column titles.
	Headers []string
	// Rows hold the cell values.
	Rows [][]string
	// Muted reports rows to render dimmed, e.g. disabled mods.
	Muted func(row int) bool
	// Width caps the table width (0 for auto).
	Width int
}

// RenderTable renders a static bordered table.
func RenderTable(opts TableOptions) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))).
		Headers(opts.Headers...).
		Rows(opts.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case opts.Muted != nil && opts.Muted(row):
				return mutedStyle
			default:
				return cellStyle
			}
		})
	if opts.Width > 0 {
		t = t.Width(opts.Width)
	}
	return t.Render()
}
