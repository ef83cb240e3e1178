// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ck3pp/ck3pp/internal/config"
	"github.com/ck3pp/ck3pp/internal/tui"
	"github.com/spf13/cobra"
)

func newConfigCommand(app *App, root *rootFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ck3pp configuration",
		Long: `Manage ck3pp configuration.

Configuration is read from config.cue in the ck3pp config directory.
CK3PP_* environment variables override file values, e.g. CK3PP_MAX_PATH=200.`,
	}

	configCmd.AddCommand(
		newConfigShowCommand(app, root),
		newConfigDumpCommand(app, root),
		newConfigPathCommand(app),
		newConfigInitCommand(app),
	)
	return configCmd
}

func newConfigShowCommand(app *App, root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cfg, err := app.loadConfig(cmd, root)
			if err != nil {
				return reportError(app.stderr, err, "load configuration", root.configPath, root.verbose)
			}

			modDir := cfg.ResolvedModDirectory()
			rows := [][]string{
				{"game_directory", orUnset(cfg.GameDirectory)},
				{"mod_directory", orUnset(modDir)},
				{"workshop_directory", orUnset(cfg.WorkshopDirectory)},
				{"max_path", strconv.Itoa(cfg.MaxPath)},
				{"ignore", strings.Join(cfg.Ignore, ", ")},
				{"default_version", cfg.DefaultVersion.String()},
				{"content_root", cfg.ContentRoot},
				{"output.readme", strconv.FormatBool(cfg.Output.Readme)},
				{"output.file_map", strconv.FormatBool(cfg.Output.FileMap)},
				{"ui.color_scheme", string(cfg.UI.ColorScheme)},
				{"ui.verbose", strconv.FormatBool(cfg.UI.Verbose)},
				{"ui.accessible", strconv.FormatBool(cfg.UI.Accessible)},
			}
			fmt.Fprint(app.stdout, tui.RenderTable(tui.TableOptions{
				Headers: []string{"Key", "Value"},
				Rows:    rows,
				Muted:   func(row int) bool { return row < len(rows) && rows[row][1] == unset },
			}))
			fmt.Fprintln(app.stdout)
			return nil
		},
	}
}

func newConfigDumpCommand(app *App, root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cfg, err := app.loadConfig(cmd, root)
			if err != nil {
				return reportError(app.stderr, err, "load configuration", root.configPath, root.verbose)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	}
}

func newConfigPathCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	}
}

func newConfigInitCommand(app *App) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig(app.FS, force)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render("✓")+" Configuration written to "+path)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	return initCmd
}

const unset = "(unset)"

func orUnset(s string) string {
	if s == "" {
		return unset
	}
	return s
}
