// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ck3pp/ck3pp/internal/playset"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// CountDirs returns the number of progress units copying mods will report:
// each mod root plus every directory below it, ignored names excluded.
func CountDirs(fsys afero.Fs, mods []playset.ModRecord, ignore []string) (int, error) {
	total := 0
	for _, mod := range mods {
		root := mod.SourcePath
		err := afero.Walk(fsys, root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return nil
			}
			if p != root && slices.Contains(ignore, info.Name()) {
				return filepath.SkipDir
			}
			total++
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("counting directories of %q: %w", mod.DisplayName, err)
		}
	}
	return total, nil
}

// CleanTopLevel removes the regular files directly inside dest. Mods ship
// thumbnails and readmes at their root, which pile up there. It returns the
// names removed; every removal is attempted even after a failure.
func CleanTopLevel(fsys afero.Fs, dest string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dest)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dest, err)
	}

	var removed []string
	var errs error
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		if err := fsys.Remove(filepath.Join(dest, entry.Name())); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		removed = append(removed, entry.Name())
	}
	return removed, errs
}
