// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ck3pp/ck3pp/internal/playset"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

type (
	// Stager extracts archive mods and removes the extracted copies when
	// the merge is over.
	Stager struct {
		fs      afero.Fs
		tempDir string
		logger  *log.Logger
		dirs    map[string]string
	}

	// Option configures a Stager.
	Option func(*Stager)
)

// WithTempDir sets where extraction directories are created. The default is
// the OS temp directory.
func WithTempDir(dir string) Option {
	return func(s *Stager) {
		s.tempDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Stager) {
		s.logger = l
	}
}

// NewStager creates a Stager over fsys.
func NewStager(fsys afero.Fs, opts ...Option) *Stager {
	s := &Stager{fs: fsys, dirs: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Stage returns mods with every archive mod pointed at an extracted copy.
// Each archive is extracted once even when listed twice, and a descriptor.mod
// inside it fills whatever the export left empty. On error the
// directories extracted so far stay registered for Cleanup.
func (s *Stager) Stage(mods []playset.ModRecord) ([]playset.ModRecord, error) {
	out := make([]playset.ModRecord, len(mods))
	for i, m := range mods {
		if m.IsArchive() {
			dir, err := s.extractOnce(m.ArchivePath)
			if err != nil {
				return nil, &playset.MissingSourceError{Mod: m.DisplayName, Path: m.ArchivePath, Err: err}
			}
			m.SourcePath = dir
			if err := playset.LoadExtractedDescriptor(s.fs, &m); err != nil {
				return nil, err
			}
		}
		out[i] = m
	}
	return out, nil
}

// Cleanup removes every extracted directory, attempting all of them.
func (s *Stager) Cleanup() error {
	var errs error
	for archivePath, dir := range s.dirs {
		if err := s.fs.RemoveAll(dir); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("removing extracted %s: %w", archivePath, err))
			continue
		}
		delete(s.dirs, archivePath)
	}
	return errs
}

func (s *Stager) extractOnce(archivePath string) (string, error) {
	if dir, ok := s.dirs[archivePath]; ok {
		return dir, nil
	}
	dir, err := afero.TempDir(s.fs, s.tempDir, "ck3pp-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	s.dirs[archivePath] = dir

	s.logger.Debug("extracting archive", "archive", archivePath, "dir", dir)
	if err := Extract(s.fs, archivePath, dir); err != nil {
		return "", err
	}
	return dir, nil
}

// Extract unpacks the zip at archivePath into dest. Entries that would land
// outside dest are rejected.
func Extract(fsys afero.Fs, archivePath, dest string) error {
	f, err := fsys.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat archive: %w", err)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("failed to read zip %s: %w", archivePath, err)
	}

	for _, file := range zr.File {
		destPath := filepath.Join(dest, filepath.FromSlash(file.Name))
		rel, err := filepath.Rel(dest, destPath)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("invalid path in zip: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := fsys.MkdirAll(destPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}
		if err := fsys.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
		if err := extractFile(fsys, file, destPath); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}
	return nil
}

func extractFile(fsys afero.Fs, file *zip.File, destPath string) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := fsys.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
