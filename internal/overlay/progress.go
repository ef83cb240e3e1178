// SPDX-License-Identifier: MPL-2.0

package overlay

// Counter is a Progress that only counts. It stands in for a progress bar
// when output is not a terminal.
type Counter struct {
	n      int
	mods   []string
	closed bool
}

// NewCounter returns a Counter starting at initial.
func NewCounter(initial int) *Counter {
	return &Counter{n: initial}
}

// Describe records the mod name.
func (c *Counter) Describe(mod string) { c.mods = append(c.mods, mod) }

// Increment adds one unit.
func (c *Counter) Increment() { c.n++ }

// Current returns the count.
func (c *Counter) Current() int { return c.n }

// Close marks the counter closed.
func (c *Counter) Close() error {
	c.closed = true
	return nil
}

// Described returns the mod names passed to Describe, in order.
func (c *Counter) Described() []string { return c.mods }

// Closed reports whether Close was called.
func (c *Counter) Closed() bool { return c.closed }
