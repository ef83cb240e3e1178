// SPDX-License-Identifier: MPL-2.0

package preserve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ck3pp/ck3pp/internal/archive"
	"github.com/ck3pp/ck3pp/internal/descriptor"
	"github.com/ck3pp/ck3pp/internal/overlay"
	"github.com/ck3pp/ck3pp/internal/playset"
	"github.com/ck3pp/ck3pp/internal/recovery"
	"github.com/ck3pp/ck3pp/internal/versionrange"
	"github.com/ck3pp/ck3pp/pkg/types"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

var (
	// ErrDeclined is returned when the operator answers no to a go/no-go question.
	ErrDeclined = errors.New("declined by operator")
	// ErrNothingToPreserve is returned when no enabled mod is left to merge.
	ErrNothingToPreserve = errors.New("no mods to preserve")
	// ErrDestinationExists is returned when the destination folder or its
	// pointer file is already present.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrPlaysetUnreadable is returned when the playset export cannot be loaded.
	ErrPlaysetUnreadable = errors.New("playset unreadable")
)

type (
	// Clock supplies the date written into names and manifests.
	Clock interface {
		Now() time.Time
	}

	// UI is the operator side of a run.
	UI interface {
		recovery.Prompter
		// Agree shows the terms of use and returns whether they are accepted.
		Agree(ctx context.Context) (bool, error)
		// ConfirmMissing lists mods that cannot be found and asks whether
		// to continue without them.
		ConfirmMissing(ctx context.Context, missing []playset.ModRecord) (bool, error)
		// ReportDisabled lists mods left out because they are disabled.
		ReportDisabled(disabled []playset.ModRecord)
		// AskVersion asks for the game version. An empty answer keeps suggested.
		AskVersion(ctx context.Context, suggested types.VersionSpec, validate func(string) error) (string, error)
		// AskName asks for the preserved mod's name. An empty answer keeps suggested.
		AskName(ctx context.Context, suggested types.ModName, validate func(string) error) (string, error)
		// NewProgress creates the copy progress reporter.
		NewProgress(total, initial int) overlay.Progress
	}

	// Settings are the configured locations and behaviors.
	Settings struct {
		// GameDirectory holds the launcher's "mod" directory; registry
		// descriptor paths are relative to it.
		GameDirectory string
		// ModDirectory receives the preserved mod.
		ModDirectory string
		// WorkshopDirectory holds Steam Workshop items.
		WorkshopDirectory string
		// ContentRoot prefixes the pointer file's path.
		ContentRoot string
		// MaxPath is the path length limit.
		MaxPath int
		// Ignore lists names never copied.
		Ignore []string
		// DefaultVersion is suggested when no mod declares a version.
		DefaultVersion types.VersionSpec
		// Output selects the optional files.
		Output descriptor.WriteOptions
		// TempDir is where archive mods are extracted. Empty means the OS default.
		TempDir string
	}

	// Request is one preservation.
	Request struct {
		// PlaysetPath is the playset export to preserve.
		PlaysetPath string
		// Name skips the name prompt when set.
		Name string
		// GameVersion skips the version prompt when set.
		GameVersion string
		// AssumeYes accepts the terms, continues past missing mods and
		// takes the suggested version and name.
		AssumeYes bool
	}

	// Preserver runs preservations.
	Preserver struct {
		fs       afero.Fs
		ui       UI
		clock    Clock
		settings Settings
		logger   *log.Logger
	}

	// Option configures a Preserver.
	Option func(*Preserver)

	systemClock struct{}
)

func (systemClock) Now() time.Time { return time.Now() }

// WithClock sets the clock.
func WithClock(c Clock) Option {
	return func(p *Preserver) {
		p.clock = c
	}
}

// WithLogger sets the logger passed to every stage.
func WithLogger(l *log.Logger) Option {
	return func(p *Preserver) {
		p.logger = l
	}
}

// New creates a Preserver.
func New(fsys afero.Fs, ui UI, settings Settings, opts ...Option) *Preserver {
	p := &Preserver{fs: fsys, ui: ui, settings: settings, clock: systemClock{}}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	if p.settings.MaxPath <= 0 {
		p.settings.MaxPath = overlay.DefaultPathLimit
	}
	if p.settings.Ignore == nil {
		p.settings.Ignore = overlay.DefaultIgnore
	}
	if p.settings.DefaultVersion == "" {
		p.settings.DefaultVersion = versionrange.DefaultSpec
	}
	if p.settings.ContentRoot == "" {
		p.settings.ContentRoot = descriptor.DefaultContentRoot
	}
	return p
}

// Run preserves the playset named by req. When the merge fails the summary
// still reports the destination, which is left in place.
func (p *Preserver) Run(ctx context.Context, req Request) (summary *Summary, err error) {
	if !req.AssumeYes {
		agreed, err := p.ui.Agree(ctx)
		if err != nil {
			return nil, err
		}
		if !agreed {
			return nil, ErrDeclined
		}
	}

	res, err := p.resolve(req.PlaysetPath)
	if err != nil {
		return nil, err
	}

	if len(res.Missing) > 0 {
		if req.AssumeYes {
			for _, m := range res.Missing {
				p.logger.Warn("skipping missing mod", "mod", m.DisplayName)
			}
		} else {
			ok, err := p.ui.ConfirmMissing(ctx, res.Missing)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrDeclined
			}
		}
	}
	if len(res.Disabled) > 0 {
		p.ui.ReportDisabled(res.Disabled)
	}
	if len(res.Mods) == 0 {
		return nil, ErrNothingToPreserve
	}

	version, err := p.gameVersion(ctx, req, res.Mods)
	if err != nil {
		return nil, err
	}

	now := p.clock.Now()
	name, dest, err := p.modName(ctx, req, types.DefaultModName(res.Name, now))
	if err != nil {
		return nil, err
	}

	stager := archive.NewStager(p.fs, archive.WithTempDir(p.settings.TempDir), archive.WithLogger(p.logger))
	defer func() {
		err = multierr.Append(err, stager.Cleanup())
	}()
	mods, err := stager.Stage(res.Mods)
	if err != nil {
		return nil, err
	}

	total, err := overlay.CountDirs(p.fs, mods, p.settings.Ignore)
	if err != nil {
		return nil, err
	}

	driver := overlay.NewDriver(p.fs,
		overlay.WithIgnore(p.settings.Ignore...),
		overlay.WithPathLimit(p.settings.MaxPath),
		overlay.WithLogger(p.logger),
	)
	ctrl := recovery.New(p.fs, driver, p.ui, p.ui.NewProgress,
		recovery.WithPathLimit(p.settings.MaxPath),
		recovery.WithLogger(p.logger),
	)

	p.logger.Info("copying mods", "mods", len(mods), "dirs", total, "destination", dest)
	result, err := ctrl.Run(ctx, overlay.NewQueue(mods), dest, total)
	summary = &Summary{
		Name:        name,
		PlaysetName: res.Name,
		GameVersion: version,
		Mods:        mods,
		Missing:     res.Missing,
		Disabled:    res.Disabled,
		Stats:       driver.Stats(),
	}
	if result != nil {
		summary.Destination = result.Destination
		summary.Renames = result.Renames
	}
	if err != nil {
		return summary, err
	}

	removed, err := overlay.CleanTopLevel(p.fs, result.Destination)
	summary.Removed = removed
	if err != nil {
		return summary, err
	}

	out, err := descriptor.Synthesize(descriptor.Input{
		Name:        name,
		Folder:      types.FolderName(filepath.Base(result.Destination)),
		GameVersion: version,
		Mods:        mods,
		Provenance:  result.Provenance,
		PlaysetName: res.Name,
		Date:        now,
		ContentRoot: p.settings.ContentRoot,
	})
	if err != nil {
		return summary, err
	}
	if err := descriptor.Write(p.fs, result.Destination, out, p.settings.Output); err != nil {
		return summary, err
	}
	summary.PointerPath = descriptor.PointerPath(result.Destination)
	summary.Attributed = result.Provenance.Len()
	return summary, nil
}

// Resolve loads the playset export at path and resolves its mods without
// copying anything.
func (p *Preserver) Resolve(path string) (*playset.Resolution, error) {
	return p.resolve(path)
}

func (p *Preserver) resolve(path string) (*playset.Resolution, error) {
	f, err := playset.Load(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlaysetUnreadable, err)
	}
	return playset.Resolve(p.fs, f, playset.ResolveOptions{
		ContentRoot: p.settings.GameDirectory,
		WorkshopDir: p.settings.WorkshopDirectory,
		BaseDir:     filepath.Dir(path),
	})
}

// SuggestedVersion is the version offered for mods: the highest required
// version, or the configured default.
func (p *Preserver) SuggestedVersion(mods []playset.ModRecord) types.VersionSpec {
	specs := make([]types.VersionSpec, len(mods))
	for i, m := range mods {
		specs[i] = m.RequiredVersion
	}
	return versionrange.Max(specs, p.settings.DefaultVersion)
}

func (p *Preserver) gameVersion(ctx context.Context, req Request, mods []playset.ModRecord) (types.VersionSpec, error) {
	suggested := p.SuggestedVersion(mods)
	if req.GameVersion != "" {
		return versionrange.ValidateOverride(req.GameVersion)
	}
	if req.AssumeYes {
		return suggested, nil
	}

	validate := func(s string) error {
		_, err := versionrange.ValidateOverride(s)
		return err
	}
	for {
		answer, err := p.ui.AskVersion(ctx, suggested, validate)
		if err != nil {
			return "", err
		}
		spec, err := versionrange.ValidateOverride(answer)
		if err != nil {
			p.logger.Warn("rejected game version", "error", err)
			continue
		}
		if spec == "" {
			return suggested, nil
		}
		return spec, nil
	}
}

func (p *Preserver) modName(ctx context.Context, req Request, suggested types.ModName) (types.ModName, string, error) {
	if req.Name != "" {
		return p.checkName(req.Name, suggested)
	}
	if req.AssumeYes {
		return p.checkName("", suggested)
	}

	validate := func(s string) error {
		_, _, err := p.checkName(s, suggested)
		return err
	}
	for {
		answer, err := p.ui.AskName(ctx, suggested, validate)
		if err != nil {
			return "", "", err
		}
		name, dest, err := p.checkName(answer, suggested)
		if err != nil {
			p.logger.Warn("rejected name", "error", err)
			continue
		}
		return name, dest, nil
	}
}

// checkName validates answer, or suggested when answer is blank, and returns
// the destination folder it names. Nothing is created.
func (p *Preserver) checkName(answer string, suggested types.ModName) (types.ModName, string, error) {
	name := types.ModName(answer)
	if answer == "" {
		name = suggested
	}
	if err := name.Validate(); err != nil {
		return "", "", err
	}
	folder := name.FolderName()
	if err := folder.Validate(); err != nil {
		return "", "", err
	}

	dest := filepath.Join(p.settings.ModDirectory, folder.String())
	for _, candidate := range []string{dest, filepath.Join(p.settings.ModDirectory, folder.PointerFileName())} {
		exists, err := afero.Exists(p.fs, candidate)
		if err != nil {
			return "", "", err
		}
		if exists {
			return "", "", fmt.Errorf("%w: %q", ErrDestinationExists, filepath.Base(candidate))
		}
	}
	return name, dest, nil
}
