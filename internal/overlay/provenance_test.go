// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"testing"

	"github.com/ck3pp/ck3pp/internal/playset"
)

func TestProvenanceSorted(t *testing.T) {
	t.Parallel()

	p := NewProvenance()
	p.Record("history/b.txt", "One")
	p.Record("common/a.txt", "One")
	p.Record("history/b.txt", "Two")

	got := p.Sorted()
	want := []Attribution{{"common/a.txt", "One"}, {"history/b.txt", "Two"}}
	if len(got) != len(want) {
		t.Fatalf("Sorted() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sorted()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestQueue(t *testing.T) {
	t.Parallel()

	mods := []playset.ModRecord{{DisplayName: "A"}, {DisplayName: "B"}}
	q := NewQueue(mods)
	mods[0].DisplayName = "changed"

	front, ok := q.Front()
	if !ok || front.DisplayName != "A" {
		t.Fatalf("Front() = %v, %v", front, ok)
	}
	q.Pop()
	q.Pop()
	q.Pop()
	if _, ok := q.Front(); ok || q.Len() != 0 {
		t.Error("queue should be empty")
	}
}
