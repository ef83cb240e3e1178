// SPDX-License-Identifier: MPL-2.0

package overlay

import "github.com/ck3pp/ck3pp/internal/playset"

// Queue is the ordered list of mods still to be copied. A mod leaves the
// queue only once its whole tree has been copied, so after a failure the
// queue holds exactly the mods that are not complete.
type Queue struct {
	mods []playset.ModRecord
}

// NewQueue returns a queue over a copy of mods.
func NewQueue(mods []playset.ModRecord) *Queue {
	return &Queue{mods: append([]playset.ModRecord(nil), mods...)}
}

// Front returns the next mod to copy.
func (q *Queue) Front() (playset.ModRecord, bool) {
	if len(q.mods) == 0 {
		return playset.ModRecord{}, false
	}
	return q.mods[0], true
}

// Pop removes the front mod.
func (q *Queue) Pop() {
	if len(q.mods) > 0 {
		q.mods = q.mods[1:]
	}
}

// Len returns the number of pending mods.
func (q *Queue) Len() int { return len(q.mods) }

// Remaining returns the pending mods in order.
func (q *Queue) Remaining() []playset.ModRecord {
	return append([]playset.ModRecord(nil), q.mods...)
}
