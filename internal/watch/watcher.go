// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when watched files change.
//
// Each pattern is a doublestar glob such as "/exports/*.json". Its static
// prefix is the directory put under watch; the rest selects which entries
// of that directory count. Directories are watched rather than files so
// editors that save by renaming a temp file are still seen. Bursts of
// events within the debounce window fire the callback once.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// defaultIgnores are editor and OS droppings that never trigger a callback.
var defaultIgnores = []string{
	"*.swp",
	"*.swo",
	"*~",
	".#*",
	".DS_Store",
}

var (
	// ErrNoPatterns is returned by New when nothing is to be watched.
	ErrNoPatterns = errors.New("watch: no patterns")
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watch: Run called more than once")
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Patterns are doublestar globs of the files to watch. Plain paths
		// are valid patterns.
		Patterns []string
		// Ignore are extra base name globs that never trigger a callback.
		Ignore []string
		// Debounce is the quiet period before the callback fires. Zero or
		// negative values use the default.
		Debounce time.Duration
		// ClearScreen clears the terminal on Stdout before each callback.
		ClearScreen bool
		// OnChange receives the changed paths, deduplicated.
		OnChange func(ctx context.Context, changed []string) error
		// Stdout and Stderr default to os.Stdout and os.Stderr.
		Stdout io.Writer
		Stderr io.Writer
	}

	// target is one watched directory and the glob its entries must match.
	target struct {
		dir     string
		pattern string
	}

	// Watcher fires Config.OnChange after matching files change. Run must
	// be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		targets  []target
		ignores  []string
		debounce time.Duration
		stdout   io.Writer
		stderr   io.Writer
		started  atomic.Bool
	}
)

// New validates cfg and registers the directory of every pattern.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Patterns) == 0 {
		return nil, ErrNoPatterns
	}

	targets := make([]target, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %q: %w", p, err)
		}
		base, pattern := doublestar.SplitPattern(filepath.ToSlash(abs))
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("watch: invalid pattern %q: %w", p, doublestar.ErrBadPattern)
		}
		targets = append(targets, target{dir: filepath.FromSlash(base), pattern: pattern})
	}
	for _, p := range cfg.Ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("watch: invalid ignore pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		targets:  targets,
		ignores:  append(slices.Clone(defaultIgnores), cfg.Ignore...),
		debounce: cfg.Debounce,
		stdout:   cfg.Stdout,
		stderr:   cfg.Stderr,
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}
	if w.stdout == nil {
		w.stdout = os.Stdout
	}
	if w.stderr == nil {
		w.stderr = os.Stderr
	}

	for _, dir := range w.dirs() {
		if err := fsw.Add(dir); err != nil {
			fsw.Close() //nolint:errcheck // the Add error is the one reported
			return nil, fmt.Errorf("watch: add directory %q: %w", dir, err)
		}
	}
	return w, nil
}

// Run processes events until ctx is cancelled. It returns nil on
// cancellation and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire skips when the previous callback is still running and retries
	// after another debounce period.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()
		if len(changed) == 0 {
			return
		}

		if w.cfg.ClearScreen {
			fmt.Fprint(w.stdout, "\033[2J\033[H")
		}
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				fmt.Fprintf(w.stderr, "watch: %v\n", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			if evt.Has(fsnotify.Chmod) || !w.matches(evt.Name) {
				continue
			}

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: %v\n", err)
		}
	}
}

// dirs returns the distinct watched directories.
func (w *Watcher) dirs() []string {
	seen := make(map[string]struct{}, len(w.targets))
	for _, t := range w.targets {
		seen[t.dir] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// matches reports whether name is selected by a pattern and not ignored.
func (w *Watcher) matches(name string) bool {
	base := filepath.Base(name)
	for _, pat := range w.ignores {
		if ok, _ := doublestar.Match(pat, base); ok {
			return false
		}
	}
	for _, t := range w.targets {
		rel, err := filepath.Rel(t.dir, name)
		if err != nil {
			continue
		}
		if ok, _ := doublestar.Match(t.pattern, filepath.ToSlash(rel)); ok {
			return true
		}
	}
	return false
}
