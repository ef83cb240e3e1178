// SPDX-License-Identifier: MPL-2.0

package playset

import (
	"errors"
	"fmt"

	"github.com/ck3pp/ck3pp/pkg/types"
)

// StatusReady is the launcher status of a mod whose files are on disk.
const StatusReady = "ready_to_play"

// ErrMissingSource is the sentinel error wrapped by MissingSourceError.
var ErrMissingSource = errors.New("mod source missing")

type (
	// File is a decoded playset export.
	File struct {
		Name string  `json:"name"`
		Mods []Entry `json:"mods"`
	}

	// Entry is one mod of a playset export, in load order.
	Entry struct {
		DisplayName     string   `json:"displayName"`
		Enabled         *bool    `json:"enabled,omitempty"`
		Status          string   `json:"status,omitempty"`
		Position        *int     `json:"position,omitempty"`
		DirPath         string   `json:"dirPath,omitempty"`
		ArchivePath     string   `json:"archivePath,omitempty"`
		SteamID         string   `json:"steamId,omitempty"`
		RegistryPath    string   `json:"registryPath,omitempty"`
		Version         string   `json:"version,omitempty"`
		Tags            []string `json:"tags,omitempty"`
		RequiredVersion string   `json:"requiredVersion,omitempty"`
	}

	// ModRecord is a mod ready to be merged. It is built once per run and
	// never changed afterwards.
	ModRecord struct {
		// DisplayName names the mod in messages and in provenance.
		DisplayName string
		// SourcePath is the directory copied into the merged mod. For
		// archive mods it is empty until the archive has been extracted.
		SourcePath string
		// ArchivePath is set for Paradox Mods content shipped as a zip.
		ArchivePath string
		// RegistryID is the mod's own .mod file relative to the content
		// root, e.g. "mod/ugc_2217534250.mod".
		RegistryID      string
		Version         string
		Tags            []string
		RequiredVersion types.VersionSpec
		// RawManifest is the text of the mod's own descriptor.
		RawManifest string
	}

	// Resolution is the outcome of Resolve.
	Resolution struct {
		// Name is the source playset name.
		Name string
		// Mods are the mods to merge, in load order.
		Mods []ModRecord
		// Missing are mods the launcher cannot find on disk.
		Missing []ModRecord
		// Disabled are mods switched off in the playset.
		Disabled []ModRecord
	}

	// MissingSourceError is returned when a mod's content or its descriptor
	// cannot be read.
	MissingSourceError struct {
		Mod  string
		Path string
		Err  error
	}
)

// IsEnabled reports whether the entry is enabled. Entries default to enabled.
func (e Entry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// IsArchive reports whether the mod must be extracted before copying.
func (m ModRecord) IsArchive() bool {
	return m.ArchivePath != "" && m.SourcePath == ""
}

// Error implements the error interface for MissingSourceError.
func (e *MissingSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mod %q: cannot read %s: %v", e.Mod, e.Path, e.Err)
	}
	return fmt.Sprintf("mod %q: %s not found", e.Mod, e.Path)
}

// Unwrap returns ErrMissingSource for errors.Is() compatibility.
func (e *MissingSourceError) Unwrap() error { return ErrMissingSource }
