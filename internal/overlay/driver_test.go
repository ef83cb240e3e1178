// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ck3pp/ck3pp/internal/playset"
	"github.com/ck3pp/ck3pp/internal/testutil"
	"github.com/spf13/afero"
)

func mod(name, dir string) playset.ModRecord {
	return playset.ModRecord{DisplayName: name, SourcePath: dir}
}

func TestMerge_LaterModWins(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	testutil.MustWriteTree(t, fsys, "/src/a", map[string]string{
		"common/traits/x.txt": "from A",
		"common/only_a.txt":   "a",
	})
	testutil.MustWriteTree(t, fsys, "/src/b", map[string]string{
		"common/traits/x.txt": "from B",
		"gfx/only_b.dds":      "b",
	})

	q := NewQueue([]playset.ModRecord{mod("A", "/src/a"), mod("B", "/src/b")})
	prov := NewProvenance()
	d := NewDriver(fsys)

	if err := d.Merge(context.Background(), q, "/dest", prov, NewCounter(0)); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if got := testutil.MustReadFile(t, fsys, filepath.Join("/dest", "common", "traits", "x.txt")); got != "from B" {
		t.Errorf("x.txt = %q, want content from B", got)
	}
	if owner, _ := prov.Lookup("common/traits/x.txt"); owner != "B" {
		t.Errorf("x.txt owner = %q, want B", owner)
	}
	if owner, _ := prov.Lookup("common/only_a.txt"); owner != "A" {
		t.Errorf("only_a.txt owner = %q, want A", owner)
	}
	if q.Len() != 0 {
		t.Errorf("queue has %d mods left, want 0", q.Len())
	}

	stats := d.Stats()
	if stats.Mods != 2 || stats.Files != 4 {
		t.Errorf("Stats() = %+v, want 2 mods and 4 files", stats)
	}
}

func TestMerge_TopLevelFilesNotAttributed(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	testutil.MustWriteTree(t, fsys, "/src/a", map[string]string{
		"thumbnail.png":    "png",
		"descriptor.mod":   `name="A"`,
		"events/event.txt": "e",
	})

	prov := NewProvenance()
	q := NewQueue([]playset.ModRecord{mod("A", "/src/a")})
	if err := NewDriver(fsys).Merge(context.Background(), q, "/dest", prov, NewCounter(0)); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if got := testutil.MustReadFile(t, fsys, "/dest/thumbnail.png"); got != "png" {
		t.Errorf("thumbnail.png = %q, want it copied", got)
	}
	if _, ok := prov.Lookup("thumbnail.png"); ok {
		t.Error("top-level file should not be attributed")
	}
	if prov.Len() != 1 {
		t.Errorf("Provenance has %d entries, want 1: %v", prov.Len(), prov.Sorted())
	}

	removed, err := CleanTopLevel(fsys, "/dest")
	if err != nil {
		t.Fatalf("CleanTopLevel() error = %v", err)
	}
	slices.Sort(removed)
	if want := []string{"descriptor.mod", "thumbnail.png"}; !slices.Equal(removed, want) {
		t.Errorf("removed = %v, want %v", removed, want)
	}
	testutil.AssertNotExists(t, fsys, "/dest/thumbnail.png")
	if got := testutil.MustReadFile(t, fsys, "/dest/events/event.txt"); got != "e" {
		t.Errorf("nested file removed by cleanup")
	}
}

func TestMerge_IgnoresGitAtEveryDepth(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	testutil.MustWriteTree(t, fsys, "/src/a", map[string]string{
		".git/HEAD":              "ref",
		"common/.git/config":     "x",
		"common/sub/.git":        "gitdir: elsewhere",
		"common/sub/real.txt":    "r",
		"localization/english.y": "l",
	})
	mods := []playset.ModRecord{mod("A", "/src/a")}

	total, err := CountDirs(fsys, mods, DefaultIgnore)
	if err != nil {
		t.Fatalf("CountDirs() error = %v", err)
	}
	// root, common, common/sub, localization
	if total != 4 {
		t.Errorf("CountDirs() = %d, want 4", total)
	}

	progress := NewCounter(0)
	prov := NewProvenance()
	if err := NewDriver(fsys).Merge(context.Background(), NewQueue(mods), "/dest", prov, progress); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if progress.Current() != total {
		t.Errorf("progress = %d, want %d", progress.Current(), total)
	}
	testutil.AssertNotExists(t, fsys, "/dest/.git")
	testutil.AssertNotExists(t, fsys, "/dest/common/.git")
	testutil.AssertNotExists(t, fsys, "/dest/common/sub/.git")
	for _, a := range prov.Sorted() {
		if strings.Contains(a.Path, ".git") {
			t.Errorf("ignored path attributed: %s", a.Path)
		}
	}
}

func TestMerge_PathTooLongKeepsQueuePosition(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	deep := strings.Repeat("d", 40)
	testutil.MustWriteTree(t, base, "/src/a", map[string]string{"common/a.txt": "a"})
	testutil.MustWriteTree(t, base, "/src/b", map[string]string{
		"common/b.txt":                 "b",
		deep + "/" + deep + "/file.txt": "deep",
	})
	testutil.MustWriteTree(t, base, "/src/c", map[string]string{"common/c.txt": "c"})

	const limit = 60
	fsys := testutil.NewLongPathFs(base, limit)
	q := NewQueue([]playset.ModRecord{mod("A", "/src/a"), mod("B", "/src/b"), mod("C", "/src/c")})
	prov := NewProvenance()
	progress := NewCounter(0)

	err := NewDriver(fsys, WithPathLimit(limit)).Merge(context.Background(), q, "/dest/preserved", prov, progress)

	var copyErr *CopyError
	if !errors.As(err, &copyErr) {
		t.Fatalf("Merge() error = %v, want *CopyError", err)
	}
	if copyErr.Mod != "B" {
		t.Errorf("CopyError.Mod = %q, want B", copyErr.Mod)
	}
	if !copyErr.AllReason(ReasonPathTooLong) {
		t.Errorf("failures = %v, want all path too long", copyErr.Failures)
	}
	// A has a root and common/.
	if copyErr.Checkpoint != 2 {
		t.Errorf("Checkpoint = %d, want 2", copyErr.Checkpoint)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("CopyError should unwrap to the filesystem error")
	}

	remaining := q.Remaining()
	if len(remaining) != 2 || remaining[0].DisplayName != "B" || remaining[1].DisplayName != "C" {
		t.Errorf("queue = %v, want [B C]", remaining)
	}
	if owner, _ := prov.Lookup("common/a.txt"); owner != "A" {
		t.Errorf("A's provenance lost, got %q", owner)
	}
	// B's other files were still copied.
	if owner, _ := prov.Lookup("common/b.txt"); owner != "B" {
		t.Errorf("common/b.txt owner = %q, want B", owner)
	}
}

func TestMerge_MissingSource(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	q := NewQueue([]playset.ModRecord{mod("Gone", "/src/gone")})

	err := NewDriver(fsys).Merge(context.Background(), q, "/dest", NewProvenance(), NewCounter(0))

	var copyErr *CopyError
	if !errors.As(err, &copyErr) {
		t.Fatalf("Merge() error = %v, want *CopyError", err)
	}
	if !copyErr.AllReason(ReasonSourceMissing) {
		t.Errorf("failures = %v, want source missing", copyErr.Failures)
	}
	if q.Len() != 1 {
		t.Errorf("failed mod was popped")
	}
}

func TestMerge_UnextractedArchive(t *testing.T) {
	t.Parallel()

	q := NewQueue([]playset.ModRecord{{DisplayName: "Zip", ArchivePath: "/pdx/mod.zip"}})
	err := NewDriver(afero.NewMemMapFs()).Merge(context.Background(), q, "/dest", NewProvenance(), NewCounter(0))
	if !errors.Is(err, playset.ErrMissingSource) {
		t.Errorf("Merge() error = %v, want ErrMissingSource", err)
	}
}

func TestMerge_ContextCanceled(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	testutil.MustWriteTree(t, fsys, "/src/a", map[string]string{"common/a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := NewQueue([]playset.ModRecord{mod("A", "/src/a")})
	err := NewDriver(fsys).Merge(ctx, q, "/dest", NewProvenance(), NewCounter(0))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Merge() error = %v, want context.Canceled", err)
	}
	if q.Len() != 1 {
		t.Error("canceled mod was popped")
	}
}

func TestMerge_DescribesEachMod(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	testutil.MustWriteTree(t, fsys, "/src/a", map[string]string{"x/a": "a"})
	testutil.MustWriteTree(t, fsys, "/src/b", map[string]string{"x/b": "b"})

	progress := NewCounter(0)
	q := NewQueue([]playset.ModRecord{mod("A", "/src/a"), mod("B", "/src/b")})
	if err := NewDriver(fsys).Merge(context.Background(), q, "/dest", NewProvenance(), progress); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if got := progress.Described(); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("Described() = %v", got)
	}
}
