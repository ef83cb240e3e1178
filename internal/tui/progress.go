// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 30

var labelStyle = lipgloss.NewStyle().Bold(true)

type (
	// ProgressOptions configures a ProgressBar.
	ProgressOptions struct {
		// Total is the number of directories to copy.
		Total int
		// Initial is where counting resumes after a recovery.
		Initial int
		// Width of the bar itself (0 for the default).
		Width int
		// Config holds common TUI configuration. In accessible mode the bar
		// is replaced by one line per mod.
		Config Config
	}

	// ProgressBar counts copied directories on a single redrawn line.
	ProgressBar struct {
		mu      sync.Mutex
		out     io.Writer
		model   progress.Model
		plain   bool
		total   int
		current int
		label   string
		closed  bool
	}
)

// NewProgressBar creates a bar and draws it at opts.Initial.
func NewProgressBar(opts ProgressOptions) *ProgressBar {
	width := opts.Width
	if width <= 0 {
		width = defaultBarWidth
	}
	b := &ProgressBar{
		out:     getOutputWriter(opts.Config),
		model:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(width), progress.WithoutPercentage()),
		plain:   opts.Config.Accessible,
		total:   opts.Total,
		current: opts.Initial,
	}
	if !b.plain {
		b.render()
	}
	return b
}

// Describe labels the bar with the mod being copied.
func (b *ProgressBar) Describe(mod string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.label = mod
	if b.plain {
		fmt.Fprintf(b.out, "Copying %s (%d/%d dirs)\n", mod, b.current, b.total)
		return
	}
	b.render()
}

// Increment counts one more directory.
func (b *ProgressBar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++
	if !b.plain {
		b.render()
	}
}

// Current returns the number of directories counted so far.
func (b *ProgressBar) Current() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Close ends the bar's line. Calling it twice is a no-op.
func (b *ProgressBar) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	if b.plain {
		return nil
	}
	_, err := fmt.Fprintln(b.out)
	return err
}

// render redraws the line. Callers hold b.mu.
func (b *ProgressBar) render() {
	fmt.Fprintf(b.out, "\r\x1b[2K%s", b.line())
}

func (b *ProgressBar) line() string {
	percent := 0.0
	if b.total > 0 {
		percent = min(float64(b.current)/float64(b.total), 1)
	}
	line := fmt.Sprintf("%s %d/%d dirs", b.model.ViewAs(percent), b.current, b.total)
	if b.label != "" {
		line = labelStyle.Render(b.label) + " " + line
	}
	return line
}
