// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrNoOptions is returned by Choose when there is nothing to choose from.
var ErrNoOptions = errors.New("no options to choose from")

// ChooseOptions configures the single-select Choose component.
type ChooseOptions struct {
	// Title is the prompt displayed above the options.
	Title string
	// Options is the list of choices, shown in order.
	Options []string
	// Selected is the initially highlighted option.
	Selected string
	// Height limits the number of visible options (0 for auto).
	Height int
	// Config holds common TUI configuration.
	Config Config
}

// Choose asks the user to pick one of opts.Options.
func Choose(ctx context.Context, opts ChooseOptions) (string, error) {
	if len(opts.Options) == 0 {
		return "", ErrNoOptions
	}

	huhOpts := make([]huh.Option[string], len(opts.Options))
	for i, opt := range opts.Options {
		huhOpts[i] = huh.NewOption(opt, opt).Selected(opt == opts.Selected)
	}

	result := opts.Selected
	sel := huh.NewSelect[string]().
		Title(opts.Title).
		Options(huhOpts...).
		Value(&result)
	if opts.Height > 0 {
		sel = sel.Height(opts.Height)
	}

	if err := newForm(opts.Config, sel).RunWithContext(ctx); err != nil {
		return "", mapAbort(err)
	}
	return result, nil
}
