// SPDX-License-Identifier: MPL-2.0

package preserve

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ck3pp/ck3pp/internal/overlay"
	"github.com/ck3pp/ck3pp/internal/playset"
	"github.com/ck3pp/ck3pp/internal/recovery"
	"github.com/ck3pp/ck3pp/internal/tui"
	"github.com/ck3pp/ck3pp/pkg/types"
)

// Terms is shown before anything is read or copied.
const Terms = `# Before you start

No support or troubleshooting is provided for preserved playsets. By using
this tool you agree **not** to seek advice for gameplay or mod-related issues
on the authors' Discord servers, Steam pages or elsewhere.

You are not allowed to distribute the preserved playset. All content belongs
to its respective authors.`

type (
	// TerminalUI asks the operator through interactive terminal prompts.
	TerminalUI struct {
		cfg      tui.Config
		out      io.Writer
		style    string
		prompter *tui.FolderNamePrompter
	}
)

var _ UI = (*TerminalUI)(nil)

// NewTerminalUI creates a TerminalUI. style is the glamour style used for
// the terms; empty means auto.
func NewTerminalUI(cfg tui.Config, style string) *TerminalUI {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &TerminalUI{
		cfg:      cfg,
		out:      out,
		style:    style,
		prompter: tui.NewFolderNamePrompter(cfg),
	}
}

// Agree implements UI.
func (u *TerminalUI) Agree(ctx context.Context) (bool, error) {
	rendered, err := tui.RenderMarkdown(Terms, u.style, 80)
	if err != nil {
		rendered = Terms + "\n"
	}
	fmt.Fprint(u.out, rendered)
	return tui.Confirm(ctx, tui.ConfirmOptions{
		Title:       "Have you understood?",
		Affirmative: "I agree",
		Negative:    "Exit",
		Config:      u.cfg,
	})
}

// ConfirmMissing implements UI.
func (u *TerminalUI) ConfirmMissing(ctx context.Context, missing []playset.ModRecord) (bool, error) {
	return tui.Confirm(ctx, tui.ConfirmOptions{
		Title:       "The following mods cannot be found. Ignore them and continue?",
		Description: bulletList(missing),
		Config:      u.cfg,
	})
}

// ReportDisabled implements UI.
func (u *TerminalUI) ReportDisabled(disabled []playset.ModRecord) {
	fmt.Fprintf(u.out, "The following mods are disabled in the playset and will NOT be included:\n%s\n", bulletList(disabled))
}

// AskVersion implements UI.
func (u *TerminalUI) AskVersion(ctx context.Context, suggested types.VersionSpec, validate func(string) error) (string, error) {
	return tui.Input(ctx, tui.InputOptions{
		Title:       "Game version",
		Description: fmt.Sprintf("Leave empty to use %s, the highest version the mods support.", suggested),
		Placeholder: suggested.String(),
		Validate:    validate,
		Config:      u.cfg,
	})
}

// AskName implements UI.
func (u *TerminalUI) AskName(ctx context.Context, suggested types.ModName, validate func(string) error) (string, error) {
	return tui.Input(ctx, tui.InputOptions{
		Title:       "Name of the preserved playset mod",
		Description: fmt.Sprintf("Leave empty to use %q.", suggested),
		Placeholder: suggested.String(),
		Validate:    validate,
		Config:      u.cfg,
	})
}

// PromptFolderName implements recovery.Prompter.
func (u *TerminalUI) PromptFolderName(ctx context.Context, req recovery.RenameRequest) (string, error) {
	return u.prompter.PromptFolderName(ctx, req)
}

// NewProgress implements UI.
func (u *TerminalUI) NewProgress(total, initial int) overlay.Progress {
	return tui.NewProgressBar(tui.ProgressOptions{Total: total, Initial: initial, Config: u.cfg})
}

func bulletList(mods []playset.ModRecord) string {
	lines := make([]string, len(mods))
	for i, m := range mods {
		lines[i] = "- " + m.DisplayName
	}
	return strings.Join(lines, "\n")
}
