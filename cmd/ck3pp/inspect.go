// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ck3pp/ck3pp/internal/descriptor"
	"github.com/ck3pp/ck3pp/internal/playset"
	"github.com/ck3pp/ck3pp/internal/preserve"
	"github.com/ck3pp/ck3pp/internal/tui"
	"github.com/ck3pp/ck3pp/internal/watch"
	"github.com/spf13/cobra"
)

var errNoModDirectory = errors.New("no mod directory configured; set game_directory or mod_directory, or pass --mod-dir")

func newInspectCommand(app *App, root *rootFlags) *cobra.Command {
	var watchFlag bool

	inspectCmd := &cobra.Command{
		Use:   "inspect <playset>",
		Short: "Show how a playset export resolves, without copying",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true

			cfg, err := app.loadConfig(cmd, root)
			if err != nil {
				return reportError(app.stderr, err, "load configuration", root.configPath, root.verbose)
			}

			logger := app.newLogger(root.verbose)
			p := preserve.New(app.FS, nil, settings(cfg, ""), app.preserverOptions(logger)...)
			inspect := func() error {
				res, err := p.Resolve(args[0])
				if err != nil {
					return err
				}
				renderResolution(app.stdout, res, p)
				return nil
			}

			if err := inspect(); err != nil {
				if !watchFlag {
					return reportError(app.stderr, err, "inspect playset", args[0], root.verbose)
				}
				logger.Error("inspect failed", "error", err)
			}
			if !watchFlag {
				return nil
			}

			w, err := watch.New(watch.Config{
				Patterns:    []string{args[0]},
				ClearScreen: true,
				Stdout:      app.stdout,
				Stderr:      app.stderr,
				OnChange: func(context.Context, []string) error {
					return inspect()
				},
			})
			if err != nil {
				return reportError(app.stderr, err, "watch playset", args[0], root.verbose)
			}
			fmt.Fprintln(app.stderr, SubtitleStyle.Render("Watching "+args[0]+" for changes. Press Ctrl+C to stop."))
			if err := w.Run(cmd.Context()); err != nil {
				return reportError(app.stderr, err, "watch playset", args[0], root.verbose)
			}
			return nil
		},
	}

	inspectCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "re-render whenever the playset export changes")
	return inspectCmd
}

func renderResolution(w io.Writer, res *playset.Resolution, p *preserve.Preserver) {
	fmt.Fprintln(w, TitleStyle.Render(res.Name))

	rows := make([][]string, 0, len(res.Mods))
	for i, m := range res.Mods {
		source := m.SourcePath
		if m.IsArchive() {
			source = m.ArchivePath
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), m.DisplayName, m.Version, m.RequiredVersion.String(), source})
	}
	if len(rows) > 0 {
		fmt.Fprint(w, tui.RenderTable(tui.TableOptions{
			Headers: []string{"#", "Mod", "Version", "Game version", "Source"},
			Rows:    rows,
		}))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Suggested game version:"), p.SuggestedVersion(res.Mods))
	if tags := descriptor.UnionTags(res.Mods); len(tags) > 0 {
		fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Tags:"), strings.Join(tags, ", "))
	}
	if paths := descriptor.UnionReplacePaths(res.Mods); len(paths) > 0 {
		fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Replaced paths:"), strings.Join(paths, ", "))
	}
	for _, group := range []struct {
		label string
		mods  []playset.ModRecord
	}{
		{"Missing (will be skipped):", res.Missing},
		{"Disabled (will be skipped):", res.Disabled},
	} {
		if len(group.mods) == 0 {
			continue
		}
		fmt.Fprintln(w, WarningStyle.Render(group.label))
		for _, m := range group.mods {
			fmt.Fprintf(w, "  - %s\n", m.DisplayName)
		}
	}
}
