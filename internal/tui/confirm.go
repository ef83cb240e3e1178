// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"

	"github.com/charmbracelet/huh"
)

// ConfirmOptions configures the Confirm component.
type ConfirmOptions struct {
	// Title is the question displayed to the user.
	Title string
	// Description provides additional context below the title.
	Description string
	// Affirmative is the text for the "yes" option (default: "Yes").
	Affirmative string
	// Negative is the text for the "no" option (default: "No").
	Negative string
	// Default is the initially selected answer.
	Default bool
	// Config holds common TUI configuration.
	Config Config
}

// Confirm asks a yes/no question.
func Confirm(ctx context.Context, opts ConfirmOptions) (bool, error) {
	affirmative := opts.Affirmative
	if affirmative == "" {
		affirmative = "Yes"
	}
	negative := opts.Negative
	if negative == "" {
		negative = "No"
	}

	result := opts.Default
	field := huh.NewConfirm().
		Title(opts.Title).
		Description(opts.Description).
		Affirmative(affirmative).
		Negative(negative).
		Value(&result)

	if err := newForm(opts.Config, field).RunWithContext(ctx); err != nil {
		return false, mapAbort(err)
	}
	return result, nil
}
