// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ck3pp/ck3pp/internal/recovery"
)

type (
	// FolderNamePrompter asks for a shorter destination folder name after
	// a path length failure.
	FolderNamePrompter struct {
		cfg Config
		ask func(context.Context, InputOptions) (string, error)
	}

	// PrompterOption configures a FolderNamePrompter.
	PrompterOption func(*FolderNamePrompter)
)

var _ recovery.Prompter = (*FolderNamePrompter)(nil)

// WithAsk replaces the input prompt, e.g. with a scripted one.
func WithAsk(ask func(context.Context, InputOptions) (string, error)) PrompterOption {
	return func(p *FolderNamePrompter) {
		p.ask = ask
	}
}

// NewFolderNamePrompter creates a prompter that renders with cfg.
func NewFolderNamePrompter(cfg Config, opts ...PrompterOption) *FolderNamePrompter {
	p := &FolderNamePrompter{cfg: cfg, ask: Input}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PromptFolderName implements recovery.Prompter. Cancelling the prompt
// counts as giving up.
func (p *FolderNamePrompter) PromptFolderName(ctx context.Context, req recovery.RenameRequest) (string, error) {
	answer, err := p.ask(ctx, InputOptions{
		Title:       "Path too long: enter a shorter folder name, or leave empty to stop",
		Description: describeRename(req),
		Placeholder: req.CurrentName,
		Config:      p.cfg,
	})
	if errors.Is(err, ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return answer, nil
}

func describeRename(req recovery.RenameRequest) string {
	var sb strings.Builder
	if req.Problem != nil {
		fmt.Fprintf(&sb, "%v\n", req.Problem)
	}
	fmt.Fprintf(&sb, "The longest path is %d characters:\n  %s\n", req.LongestLength, req.Longest)
	fmt.Fprintf(&sb, "%q must be at least %d characters shorter.", req.CurrentName, req.ShorterBy)
	return sb.String()
}
