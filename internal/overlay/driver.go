// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ck3pp/ck3pp/internal/playset"
	"github.com/spf13/afero"
)

// DefaultIgnore lists entry names never copied from a mod.
var DefaultIgnore = []string{".git"}

type (
	// Progress receives one unit per directory copied.
	Progress interface {
		// Describe names the mod being copied.
		Describe(mod string)
		Increment()
		// Current returns the number of units reported so far.
		Current() int
		Close() error
	}

	// Stats accumulates the volume copied by a Driver.
	Stats struct {
		Mods  int
		Dirs  int
		Files int
		Bytes int64
	}

	// Driver copies queued mods into a destination directory.
	Driver struct {
		fs     afero.Fs
		ignore map[string]struct{}
		limit  int
		logger *log.Logger
		stats  Stats
	}

	// Option configures a Driver.
	Option func(*Driver)

	// modCopy is the state of copying one mod.
	modCopy struct {
		mod        playset.ModRecord
		provenance *Provenance
		progress   Progress
		failures   []Failure
	}
)

// WithIgnore replaces the names skipped at every depth.
func WithIgnore(names ...string) Option {
	return func(d *Driver) {
		d.ignore = make(map[string]struct{}, len(names))
		for _, n := range names {
			d.ignore[n] = struct{}{}
		}
	}
}

// WithPathLimit sets the path length at which a missing destination is
// classified as ReasonPathTooLong.
func WithPathLimit(limit int) Option {
	return func(d *Driver) {
		d.limit = limit
	}
}

// WithLogger sets the logger for per-mod and per-failure messages.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// NewDriver creates a Driver over fsys.
func NewDriver(fsys afero.Fs, opts ...Option) *Driver {
	d := &Driver{fs: fsys, limit: DefaultPathLimit}
	WithIgnore(DefaultIgnore...)(d)
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	return d
}

// Stats returns the volume copied so far.
func (d *Driver) Stats() Stats { return d.stats }

// Merge copies the queued mods into dest in order, creating dest if needed.
// A mod is popped from q only after its whole tree has been copied; files at
// depth one or more are attributed to it in prov. When any entry of a mod
// fails, the rest of that mod is still attempted and Merge returns a
// *CopyError describing every failure, leaving the mod at the front of q.
func (d *Driver) Merge(ctx context.Context, q *Queue, dest string, prov *Provenance, progress Progress) error {
	if err := d.fs.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("failed to create destination %s: %w", dest, err)
	}

	for {
		mod, ok := q.Front()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if mod.SourcePath == "" {
			return &playset.MissingSourceError{Mod: mod.DisplayName, Path: mod.ArchivePath}
		}

		checkpoint := progress.Current()
		progress.Describe(mod.DisplayName)
		d.logger.Debug("copying mod", "mod", mod.DisplayName, "source", mod.SourcePath)

		c := &modCopy{mod: mod, provenance: prov, progress: progress}
		if err := d.copyDir(ctx, c, mod.SourcePath, dest, ""); err != nil {
			return err
		}
		if len(c.failures) > 0 {
			return &CopyError{Mod: mod.DisplayName, Failures: c.failures, Checkpoint: checkpoint}
		}

		q.Pop()
		d.stats.Mods++
	}
}

// copyDir copies the directory src to dst. rel is the slash separated path
// of src below the mod root. Only context errors are returned; filesystem
// failures are collected in c.
func (d *Driver) copyDir(ctx context.Context, c *modCopy, src, dst, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.progress.Increment()

	if err := d.fs.MkdirAll(dst, 0o755); err != nil {
		c.fail(d.failure(src, dst, err, true))
		return nil
	}
	entries, err := afero.ReadDir(d.fs, src)
	if err != nil {
		c.fail(d.failure(src, dst, err, false))
		return nil
	}
	d.stats.Dirs++

	for _, entry := range entries {
		name := entry.Name()
		if _, skip := d.ignore[name]; skip {
			continue
		}
		srcPath := filepath.Join(src, name)
		dstPath := filepath.Join(dst, name)
		relPath := path.Join(rel, name)

		if entry.IsDir() {
			if err := d.copyDir(ctx, c, srcPath, dstPath, relPath); err != nil {
				return err
			}
			continue
		}

		if onDest, err := d.copyFile(srcPath, dstPath, entry); err != nil {
			c.fail(d.failure(srcPath, dstPath, err, onDest))
			continue
		}
		d.stats.Files++
		d.stats.Bytes += entry.Size()
		// Loose files at the mod root are removed after the merge.
		if rel != "" {
			c.provenance.Record(relPath, c.mod.DisplayName)
		}
	}
	return nil
}

// copyFile copies contents and modification time. onDest reports whether a
// failure happened on the destination side.
func (d *Driver) copyFile(src, dst string, info os.FileInfo) (onDest bool, err error) {
	in, err := d.fs.Open(src)
	if err != nil {
		return false, err
	}
	defer in.Close()

	out, err := d.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()|0o200)
	if err != nil {
		return true, err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return true, err
	}
	if err := out.Close(); err != nil {
		return true, err
	}
	if err := d.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		d.logger.Debug("failed to preserve modification time", "path", dst, "error", err)
	}
	return true, nil
}

func (d *Driver) failure(src, dst string, err error, onDest bool) Failure {
	p := src
	if onDest {
		p = dst
	}
	f := Failure{Source: src, Destination: dst, Reason: classify(err, p, onDest, d.limit), Err: err}
	d.logger.Debug("copy failed", "source", src, "destination", dst, "reason", f.Reason, "error", err)
	return f
}

func (c *modCopy) fail(f Failure) {
	c.failures = append(c.failures, f)
}
