// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// DescriptorFile is the descriptor inside the merged folder.
	DescriptorFile = "descriptor.mod"
	// ReadmeFile describes the preserved mod.
	ReadmeFile = "README.txt"
	// ContentManifestFile maps merged files to their mods.
	ContentManifestFile = "file_to_mod_map.txt"
)

// WriteOptions select the optional files.
type WriteOptions struct {
	Readme          bool
	ContentManifest bool
}

// PointerPath returns where the pointer file of dest goes: beside it,
// named after the folder.
func PointerPath(dest string) string {
	return filepath.Join(filepath.Dir(dest), filepath.Base(dest)+".mod")
}

// Write puts out's files in place for the merged folder dest. Existing
// files are replaced.
func Write(fsys afero.Fs, dest string, out Output, opts WriteOptions) error {
	files := []struct {
		path    string
		content string
		enabled bool
	}{
		{filepath.Join(dest, DescriptorFile), out.Descriptor, true},
		{PointerPath(dest), out.Pointer, true},
		{filepath.Join(dest, ReadmeFile), out.Readme, opts.Readme},
		{filepath.Join(dest, ContentManifestFile), out.ContentManifest, opts.ContentManifest},
	}
	for _, f := range files {
		if !f.enabled {
			continue
		}
		if err := afero.WriteFile(fsys, f.path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
	}
	return nil
}
