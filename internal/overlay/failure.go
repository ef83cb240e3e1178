// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"unicode/utf8"
)

// DefaultPathLimit is MAX_PATH on Windows: many systems refuse to create a
// path of this many characters or more.
const DefaultPathLimit = 260

const (
	// ReasonOther is any failure not covered below.
	ReasonOther Reason = iota
	// ReasonPathTooLong means the destination path exceeds the OS limit.
	ReasonPathTooLong
	// ReasonPermissionDenied means a source or destination was not accessible.
	ReasonPermissionDenied
	// ReasonSourceMissing means a source file or directory disappeared.
	ReasonSourceMissing
)

type (
	// Reason classifies a failed file operation.
	Reason int

	// Failure is one failed file or directory copy.
	Failure struct {
		Source      string
		Destination string
		Reason      Reason
		Err         error
	}

	// CopyError aggregates every failure met while copying one mod. The
	// copy carries on past individual failures, so a single mod can report
	// many.
	CopyError struct {
		Mod      string
		Failures []Failure
		// Checkpoint is the progress count when the mod started.
		Checkpoint int
	}
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonPathTooLong:
		return "path too long"
	case ReasonPermissionDenied:
		return "permission denied"
	case ReasonSourceMissing:
		return "source missing"
	default:
		return "other"
	}
}

// Error implements the error interface for Failure.
func (f Failure) Error() string {
	return fmt.Sprintf("%s -> %s: %v", f.Source, f.Destination, f.Err)
}

// Unwrap returns the underlying filesystem error.
func (f Failure) Unwrap() error { return f.Err }

// Error implements the error interface for CopyError.
func (e *CopyError) Error() string {
	switch len(e.Failures) {
	case 0:
		return fmt.Sprintf("copying %q failed", e.Mod)
	case 1:
		return fmt.Sprintf("copying %q: %v", e.Mod, e.Failures[0])
	default:
		return fmt.Sprintf("copying %q: %v (and %d more)", e.Mod, e.Failures[0], len(e.Failures)-1)
	}
}

// Unwrap exposes every failure to errors.Is and errors.As.
func (e *CopyError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// AllReason reports whether there is at least one failure and every
// failure has reason r.
func (e *CopyError) AllReason(r Reason) bool {
	if len(e.Failures) == 0 {
		return false
	}
	for _, f := range e.Failures {
		if f.Reason != r {
			return false
		}
	}
	return true
}

// LongestDestination returns the longest failed destination path and its
// length in characters.
func (e *CopyError) LongestDestination() (string, int) {
	var longest string
	var n int
	for _, f := range e.Failures {
		if l := PathLength(f.Destination); l > n {
			longest, n = f.Destination, l
		}
	}
	return longest, n
}

// PathLength counts the characters of p the way the path limit does.
func PathLength(p string) int {
	return utf8.RuneCountInString(p)
}

// classify maps a filesystem error to a Reason. A not-exist error on the
// destination side of a path at or over limit is how Windows reports an
// overlong path, so it counts as ReasonPathTooLong.
func classify(err error, path string, destination bool, limit int) Reason {
	switch {
	case errors.Is(err, syscall.ENAMETOOLONG):
		return ReasonPathTooLong
	case errors.Is(err, fs.ErrNotExist):
		if !destination {
			return ReasonSourceMissing
		}
		if PathLength(path) >= limit {
			return ReasonPathTooLong
		}
		return ReasonOther
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermissionDenied
	default:
		return ReasonOther
	}
}
