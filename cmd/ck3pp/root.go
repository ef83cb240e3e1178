// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/ck3pp/ck3pp/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	verbose    bool
	configPath string
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "ck3pp",
		Short: "Preserve a Crusader Kings III playset as a single local mod",
		Long: TitleStyle.Render("ck3pp") + SubtitleStyle.Render(" - the playset preserver") + `

ck3pp merges every enabled mod of a playset, in load order, into one local
mod folder. Later mods overwrite files of earlier ones, exactly as the game
would load them. The result keeps working when the original mods update.

` + SubtitleStyle.Render("Examples:") + `
  ck3pp inspect playset.json         Show how a playset export resolves
  ck3pp preserve playset.json        Preserve it interactively
  ck3pp preserve playset.json --yes  Accept every default
  ck3pp config init                  Create a default configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is the ck3pp config directory)")

	rootCmd.AddCommand(
		newPreserveCommand(app, flags),
		newInspectCommand(app, flags),
		newConfigCommand(app, flags),
		newVersionCommand(app),
	)
	return rootCmd
}

// loadConfig loads configuration for a command and lets ui.verbose switch
// on verbose output when the flag was not given.
func (a *App) loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := a.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: flags.configPath, Fs: a.FS})
	if err != nil {
		return nil, err
	}
	if !flags.verbose {
		flags.verbose = cfg.UI.Verbose
	}
	return cfg, nil
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
