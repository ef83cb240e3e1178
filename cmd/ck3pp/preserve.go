// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/ck3pp/ck3pp/internal/preserve"
	"github.com/spf13/cobra"
)

type preserveFlags struct {
	name        string
	gameVersion string
	modDir      string
	yes         bool
}

func newPreserveCommand(app *App, root *rootFlags) *cobra.Command {
	flags := &preserveFlags{}

	preserveCmd := &cobra.Command{
		Use:   "preserve <playset>",
		Short: "Merge a playset into a single local mod",
		Long: `Merge every enabled mod of a playset export, in load order, into one
folder in the game's mod directory, then write its descriptor files.

When a path turns out too long for the filesystem, the copy pauses and asks
for a shorter folder name, then resumes where it stopped.`,
		Example: `  ck3pp preserve playset.json
  ck3pp preserve playset.toml --name "Stable 1.12" --game-version "1.12.*" --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			return runPreserve(cmd, app, root, flags, args[0])
		},
	}

	preserveCmd.Flags().StringVar(&flags.name, "name", "", "name of the preserved mod (skips the prompt)")
	preserveCmd.Flags().StringVar(&flags.gameVersion, "game-version", "", "supported game version, e.g. 1.12.* (skips the prompt)")
	preserveCmd.Flags().StringVar(&flags.modDir, "mod-dir", "", "directory receiving the preserved mod (default <game directory>/mod)")
	preserveCmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "accept the terms, skip missing mods and take suggested answers")

	return preserveCmd
}

func runPreserve(cmd *cobra.Command, app *App, root *rootFlags, flags *preserveFlags, playsetPath string) error {
	cfg, err := app.loadConfig(cmd, root)
	if err != nil {
		return reportError(app.stderr, err, "load configuration", root.configPath, root.verbose)
	}

	logger := app.newLogger(root.verbose)
	s := settings(cfg, flags.modDir)
	if s.ModDirectory == "" {
		return reportError(app.stderr, errNoModDirectory, "preserve playset", playsetPath, root.verbose)
	}

	p := preserve.New(app.FS, app.NewUI(cfg, app.stderr), s, app.preserverOptions(logger)...)
	summary, err := p.Run(cmd.Context(), preserve.Request{
		PlaysetPath: playsetPath,
		Name:        flags.name,
		GameVersion: flags.gameVersion,
		AssumeYes:   flags.yes,
	})
	if summary != nil {
		fmt.Fprint(app.stdout, summary.String())
	}
	if err != nil {
		return reportError(app.stderr, err, "preserve playset", playsetPath, root.verbose)
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SuccessStyle.Render("✓")+" If the launcher is open, close and reopen it to see the new mod.")
	return nil
}
