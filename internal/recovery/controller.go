// SPDX-License-Identifier: MPL-2.0

package recovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ck3pp/ck3pp/internal/overlay"
	"github.com/ck3pp/ck3pp/pkg/types"
	"github.com/spf13/afero"
)

const (
	// StateCopying runs the driver over the queue.
	StateCopying State = iota
	// StateFailed inspects the error of the last copy.
	StateFailed
	// StateAwaitingRename asks the operator for a shorter folder name.
	StateAwaitingRename
	// StateAborted ends the run with the copy error.
	StateAborted
	// StateDone ends the run successfully.
	StateDone
)

// ErrFolderExists is returned when the replacement folder name is taken.
var ErrFolderExists = errors.New("folder already exists")

type (
	// State is a step of the recovery loop.
	State int

	// RenameRequest tells the operator why a new folder name is needed.
	RenameRequest struct {
		// CurrentName is the destination folder name.
		CurrentName string
		// Longest is the longest destination path that failed.
		Longest string
		// LongestLength is the length of Longest in characters.
		LongestLength int
		// ShorterBy is how many characters the folder name must lose for
		// Longest to fit.
		ShorterBy int
		// Problem is why the previous answer was rejected, if it was.
		Problem error
	}

	// Prompter asks the operator for a replacement folder name. An empty
	// answer means the operator gives up.
	Prompter interface {
		PromptFolderName(ctx context.Context, req RenameRequest) (string, error)
	}

	// ProgressFactory creates a progress reporter for total units,
	// starting at initial.
	ProgressFactory func(total, initial int) overlay.Progress

	// Rename records one recovery.
	Rename struct {
		From string
		To   string
	}

	// Result is the outcome of Run. Destination reflects every rename.
	Result struct {
		Destination string
		Provenance  *overlay.Provenance
		Renames     []Rename
	}

	// Controller runs the overlay copy with path length recovery.
	Controller struct {
		fs          afero.Fs
		driver      *overlay.Driver
		prompter    Prompter
		newProgress ProgressFactory
		limit       int
		logger      *log.Logger
	}

	// Option configures a Controller.
	Option func(*Controller)
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCopying:
		return "copying"
	case StateFailed:
		return "failed"
	case StateAwaitingRename:
		return "awaiting rename"
	case StateAborted:
		return "aborted"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// WithPathLimit sets the limit used to compute how much shorter a
// replacement name must be. It should match the driver's limit.
func WithPathLimit(limit int) Option {
	return func(c *Controller) {
		c.limit = limit
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates a Controller. newProgress is called once at the start and
// again after every rename.
func New(fsys afero.Fs, driver *overlay.Driver, prompter Prompter, newProgress ProgressFactory, opts ...Option) *Controller {
	c := &Controller{
		fs:          fsys,
		driver:      driver,
		prompter:    prompter,
		newProgress: newProgress,
		limit:       overlay.DefaultPathLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Run copies the queued mods into dest, reporting total progress units.
// On error the returned Result still names the current destination, which
// is left as it is. When the operator declines to rename, the original
// *overlay.CopyError is returned.
func (c *Controller) Run(ctx context.Context, q *overlay.Queue, dest string, total int) (*Result, error) {
	res := &Result{Destination: dest, Provenance: overlay.NewProvenance()}
	progress := c.newProgress(total, 0)

	var (
		state   = StateCopying
		copyErr *overlay.CopyError
		lastErr error
		problem error
	)
	for {
		switch state {
		case StateCopying:
			lastErr = c.driver.Merge(ctx, q, res.Destination, res.Provenance, progress)
			c.closeProgress(progress)
			if lastErr == nil {
				state = StateDone
			} else {
				state = StateFailed
			}

		case StateFailed:
			copyErr = nil
			if errors.As(lastErr, &copyErr) && copyErr.AllReason(overlay.ReasonPathTooLong) {
				longest, n := copyErr.LongestDestination()
				c.logger.Warn("destination path too long", "mod", copyErr.Mod, "path", longest, "length", n)
				problem = nil
				state = StateAwaitingRename
			} else {
				state = StateAborted
			}

		case StateAwaitingRename:
			answer, err := c.prompter.PromptFolderName(ctx, c.request(res.Destination, copyErr, problem))
			if err != nil {
				return res, err
			}
			answer = strings.TrimSpace(answer)
			if answer == "" {
				state = StateAborted
				continue
			}
			target, err := c.replacement(res.Destination, answer)
			if err != nil {
				problem = err
				continue
			}
			if err := c.fs.Rename(res.Destination, target); err != nil {
				return res, fmt.Errorf("failed to rename %s to %s: %w", res.Destination, target, err)
			}
			c.logger.Info("renamed destination", "from", filepath.Base(res.Destination), "to", answer)
			res.Renames = append(res.Renames, Rename{From: res.Destination, To: target})
			res.Destination = target
			progress = c.newProgress(total, copyErr.Checkpoint)
			state = StateCopying

		case StateAborted:
			return res, lastErr

		case StateDone:
			return res, nil
		}
	}
}

func (c *Controller) request(dest string, copyErr *overlay.CopyError, problem error) RenameRequest {
	longest, n := copyErr.LongestDestination()
	return RenameRequest{
		CurrentName:   filepath.Base(dest),
		Longest:       longest,
		LongestLength: n,
		ShorterBy:     n - c.limit + 1,
		Problem:       problem,
	}
}

// replacement validates name and returns the sibling path it names. Neither
// the folder nor its pointer file may exist yet.
func (c *Controller) replacement(dest, name string) (string, error) {
	folder := types.FolderName(name)
	if err := folder.Validate(); err != nil {
		return "", err
	}
	dir := filepath.Dir(dest)
	target := filepath.Join(dir, name)
	// The pointer file is written beside the folder, so a taken one counts too.
	for _, candidate := range []string{target, filepath.Join(dir, folder.PointerFileName())} {
		exists, err := afero.Exists(c.fs, candidate)
		if err != nil {
			return "", err
		}
		if exists {
			return "", fmt.Errorf("%q: %w", filepath.Base(candidate), ErrFolderExists)
		}
	}
	return target, nil
}

func (c *Controller) closeProgress(p overlay.Progress) {
	if err := p.Close(); err != nil {
		c.logger.Debug("failed to close progress", "error", err)
	}
}
