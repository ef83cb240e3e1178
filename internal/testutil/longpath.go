// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"syscall"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// LongPathFs wraps an afero.Fs and fails every create or mkdir whose path
// has at least Limit characters, reporting the path as not found. This is
// how Windows answers writes beyond MAX_PATH when long paths are disabled.
type LongPathFs struct {
	afero.Fs
	Limit int
}

// NewLongPathFs returns a LongPathFs over base.
func NewLongPathFs(base afero.Fs, limit int) *LongPathFs {
	return &LongPathFs{Fs: base, Limit: limit}
}

func (l *LongPathFs) tooLong(op, name string) error {
	if utf8.RuneCountInString(name) >= l.Limit {
		return &os.PathError{Op: op, Path: name, Err: syscall.ENOENT}
	}
	return nil
}

// Create fails for long paths.
func (l *LongPathFs) Create(name string) (afero.File, error) {
	if err := l.tooLong("open", name); err != nil {
		return nil, err
	}
	return l.Fs.Create(name)
}

// OpenFile fails for long paths opened for writing.
func (l *LongPathFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 {
		if err := l.tooLong("open", name); err != nil {
			return nil, err
		}
	}
	return l.Fs.OpenFile(name, flag, perm)
}

// Mkdir fails for long paths.
func (l *LongPathFs) Mkdir(name string, perm os.FileMode) error {
	if err := l.tooLong("mkdir", name); err != nil {
		return err
	}
	return l.Fs.Mkdir(name, perm)
}

// MkdirAll fails for long paths.
func (l *LongPathFs) MkdirAll(path string, perm os.FileMode) error {
	if err := l.tooLong("mkdir", path); err != nil {
		return err
	}
	return l.Fs.MkdirAll(path, perm)
}

// Name identifies the wrapper.
func (l *LongPathFs) Name() string { return "LongPathFs" }
