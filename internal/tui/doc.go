// SPDX-License-Identifier: MPL-2.0

// Package tui provides the terminal components used while preserving a playset.
//
// Prompts wrap charmbracelet/huh forms and honor accessible mode. The copy
// progress bar renders a bubbles progress model inline, and tables use
// lipgloss/table.
package tui
