// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"

	"github.com/charmbracelet/huh"
)

type (
	// InputOptions configures the Input component.
	InputOptions struct {
		// Title is the prompt displayed above the input.
		Title string
		// Description provides additional context below the title.
		Description string
		// Placeholder is shown when the input is empty.
		Placeholder string
		// Value is the initial value of the input.
		Value string
		// CharLimit limits the number of characters (0 for no limit).
		CharLimit int
		// Validate rejects an answer with an explanation; the prompt repeats.
		Validate func(string) error
		// Config holds common TUI configuration.
		Config Config
	}

	// InputBuilder provides a fluent API for building Input prompts.
	InputBuilder struct {
		opts InputOptions
	}
)

// Input prompts for a line of text.
func Input(ctx context.Context, opts InputOptions) (string, error) {
	result := opts.Value

	field := huh.NewInput().
		Title(opts.Title).
		Description(opts.Description).
		Placeholder(opts.Placeholder).
		Value(&result)
	if opts.CharLimit > 0 {
		field = field.CharLimit(opts.CharLimit)
	}
	if opts.Validate != nil {
		field = field.Validate(opts.Validate)
	}

	if err := newForm(opts.Config, field).RunWithContext(ctx); err != nil {
		return "", mapAbort(err)
	}
	return result, nil
}

// NewInput creates a new InputBuilder with default options.
func NewInput() *InputBuilder {
	return &InputBuilder{
		opts: InputOptions{
			Config: DefaultConfig(),
		},
	}
}

// Title sets the title of the input prompt.
func (b *InputBuilder) Title(title string) *InputBuilder {
	b.opts.Title = title
	return b
}

// Description sets the description of the input prompt.
func (b *InputBuilder) Description(desc string) *InputBuilder {
	b.opts.Description = desc
	return b
}

// Placeholder sets the placeholder text.
func (b *InputBuilder) Placeholder(placeholder string) *InputBuilder {
	b.opts.Placeholder = placeholder
	return b
}

// Value sets the initial value.
func (b *InputBuilder) Value(value string) *InputBuilder {
	b.opts.Value = value
	return b
}

// CharLimit sets the maximum number of characters.
func (b *InputBuilder) CharLimit(limit int) *InputBuilder {
	b.opts.CharLimit = limit
	return b
}

// Validate sets the answer validator.
func (b *InputBuilder) Validate(fn func(string) error) *InputBuilder {
	b.opts.Validate = fn
	return b
}

// WithConfig replaces the common TUI configuration.
func (b *InputBuilder) WithConfig(cfg Config) *InputBuilder {
	b.opts.Config = cfg
	return b
}

// Options returns the accumulated options.
func (b *InputBuilder) Options() InputOptions {
	return b.opts
}

// Run executes the input prompt and returns the entered value.
func (b *InputBuilder) Run(ctx context.Context) (string, error) {
	return Input(ctx, b.opts)
}
