// SPDX-License-Identifier: MPL-2.0

package playset

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/ck3pp/ck3pp/pkg/types"
	"github.com/spf13/afero"
)

// descriptorFileName is the descriptor inside every mod directory.
const descriptorFileName = "descriptor.mod"

// ResolveOptions locate the content a playset export refers to.
type ResolveOptions struct {
	// ContentRoot is the game's user directory that holds "mod/".
	// Registry paths are relative to it.
	ContentRoot string
	// WorkshopDir holds Steam Workshop items, one directory per item ID.
	WorkshopDir string
	// BaseDir anchors relative dirPath and archivePath values, usually
	// the directory of the export file.
	BaseDir string
}

// Resolve maps the entries of f to ModRecords. Entries that are missing on
// disk are set aside first, then disabled entries; both keep load order.
// Descriptors of the remaining mods are read so their tags and required
// versions are known; an unreadable registry descriptor is a
// *MissingSourceError.
func Resolve(fsys afero.Fs, f *File, opts ResolveOptions) (*Resolution, error) {
	res := &Resolution{Name: f.Name}

	for _, e := range f.Mods {
		rec := ModRecord{
			DisplayName:     e.DisplayName,
			RegistryID:      e.RegistryPath,
			Version:         e.Version,
			Tags:            e.Tags,
			RequiredVersion: types.VersionSpec(e.RequiredVersion),
		}
		switch {
		case e.DirPath != "":
			rec.SourcePath = anchor(opts.BaseDir, e.DirPath)
		case e.ArchivePath != "":
			rec.ArchivePath = anchor(opts.BaseDir, e.ArchivePath)
		case e.SteamID != "" && opts.WorkshopDir != "":
			rec.SourcePath = filepath.Join(opts.WorkshopDir, e.SteamID)
		}

		if (e.Status != "" && e.Status != StatusReady) || !present(fsys, rec) {
			res.Missing = append(res.Missing, rec)
			continue
		}
		if !e.IsEnabled() {
			res.Disabled = append(res.Disabled, rec)
			continue
		}

		if err := loadDescriptor(fsys, &rec, opts.ContentRoot); err != nil {
			return nil, err
		}
		res.Mods = append(res.Mods, rec)
	}
	return res, nil
}

func anchor(base, p string) string {
	if base == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func present(fsys afero.Fs, rec ModRecord) bool {
	if rec.SourcePath != "" {
		ok, err := afero.IsDir(fsys, rec.SourcePath)
		return err == nil && ok
	}
	if rec.ArchivePath != "" {
		ok, err := afero.Exists(fsys, rec.ArchivePath)
		return err == nil && ok
	}
	return false
}

// LoadExtractedDescriptor fills rec from the descriptor.mod at the root of
// its extracted SourcePath. Records that already carry a manifest are left
// alone, and a missing descriptor is not an error.
func LoadExtractedDescriptor(fsys afero.Fs, rec *ModRecord) error {
	if rec.RawManifest != "" || rec.SourcePath == "" {
		return nil
	}
	staged := *rec
	staged.RegistryID = ""
	if err := loadDescriptor(fsys, &staged, ""); err != nil {
		return err
	}
	staged.RegistryID = rec.RegistryID
	*rec = staged
	return nil
}

// loadDescriptor reads the mod's own descriptor into RawManifest and fills
// fields the export left empty.
func loadDescriptor(fsys afero.Fs, rec *ModRecord, contentRoot string) error {
	var path string
	switch {
	case rec.RegistryID != "":
		path = anchor(contentRoot, filepath.FromSlash(rec.RegistryID))
	case rec.SourcePath != "":
		path = filepath.Join(rec.SourcePath, descriptorFileName)
	default:
		return nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if rec.RegistryID == "" && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &MissingSourceError{Mod: rec.DisplayName, Path: path, Err: err}
	}

	rec.RawManifest = string(data)
	d := ParseModDescriptor(rec.RawManifest)
	if rec.Version == "" {
		rec.Version = d.Version
	}
	if rec.Tags == nil {
		rec.Tags = d.Tags
	}
	if rec.RequiredVersion == "" {
		rec.RequiredVersion = types.VersionSpec(d.SupportedVersion)
	}
	return nil
}

