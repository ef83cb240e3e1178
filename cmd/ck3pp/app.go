// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/ck3pp/ck3pp/internal/config"
	"github.com/ck3pp/ck3pp/internal/descriptor"
	"github.com/ck3pp/ck3pp/internal/preserve"
	"github.com/ck3pp/ck3pp/internal/tui"
	"github.com/spf13/afero"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// UIFactory creates the operator interface for a preservation.
	UIFactory func(cfg *config.Config, stderr io.Writer) preserve.UI

	// App wires CLI services and shared dependencies. Command handlers
	// receive an App and delegate through it.
	App struct {
		Config ConfigProvider
		FS     afero.Fs
		NewUI  UIFactory
		Clock  preserve.Clock
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		FS     afero.Fs
		NewUI  UIFactory
		Clock  preserve.Clock
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.NewUI == nil {
		deps.NewUI = terminalUI
	}

	return &App{
		Config: deps.Config,
		FS:     deps.FS,
		NewUI:  deps.NewUI,
		Clock:  deps.Clock,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

func terminalUI(cfg *config.Config, stderr io.Writer) preserve.UI {
	tcfg := tui.DefaultConfig()
	tcfg.Accessible = tcfg.Accessible || cfg.UI.Accessible
	tcfg.Output = stderr
	return preserve.NewTerminalUI(tcfg, glamourStyle(cfg.UI.ColorScheme))
}

// glamourStyle maps the configured color scheme to a glamour style name.
func glamourStyle(cs config.ColorScheme) string {
	switch cs {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// newLogger returns the stderr logger, at debug level when verbose.
func (a *App) newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: "ck3pp"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// settings derives preservation settings from cfg. A non-empty modDir
// overrides the configured destination directory.
func settings(cfg *config.Config, modDir string) preserve.Settings {
	if modDir == "" {
		modDir = cfg.ResolvedModDirectory()
	}
	return preserve.Settings{
		GameDirectory:     cfg.GameDirectory,
		ModDirectory:      modDir,
		WorkshopDirectory: cfg.WorkshopDirectory,
		ContentRoot:       cfg.ContentRoot,
		MaxPath:           cfg.MaxPath,
		Ignore:            cfg.Ignore,
		DefaultVersion:    cfg.DefaultVersion,
		Output: descriptor.WriteOptions{
			Readme:          cfg.Output.Readme,
			ContentManifest: cfg.Output.FileMap,
		},
	}
}

func (a *App) preserverOptions(logger *log.Logger) []preserve.Option {
	opts := []preserve.Option{preserve.WithLogger(logger)}
	if a.Clock != nil {
		opts = append(opts, preserve.WithClock(a.Clock))
	}
	return opts
}
