// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"maps"
	"slices"
)

type (
	// Provenance maps a destination-relative file path, slash separated, to
	// the display name of the mod that last wrote it.
	Provenance struct {
		owners map[string]string
	}

	// Attribution is one entry of a Provenance.
	Attribution struct {
		Path string
		Mod  string
	}
)

// NewProvenance returns an empty Provenance.
func NewProvenance() *Provenance {
	return &Provenance{owners: make(map[string]string)}
}

// Record attributes path to mod, replacing any earlier owner.
func (p *Provenance) Record(path, mod string) {
	p.owners[path] = mod
}

// Lookup returns the mod that supplied path.
func (p *Provenance) Lookup(path string) (string, bool) {
	mod, ok := p.owners[path]
	return mod, ok
}

// Len returns the number of attributed files.
func (p *Provenance) Len() int { return len(p.owners) }

// Sorted returns every attribution ordered by path.
func (p *Provenance) Sorted() []Attribution {
	out := make([]Attribution, 0, len(p.owners))
	for _, path := range slices.Sorted(maps.Keys(p.owners)) {
		out = append(out, Attribution{Path: path, Mod: p.owners[path]})
	}
	return out
}
