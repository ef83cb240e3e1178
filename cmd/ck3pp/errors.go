// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ck3pp/ck3pp/internal/issue"
	"github.com/ck3pp/ck3pp/internal/overlay"
	"github.com/ck3pp/ck3pp/internal/playset"
	"github.com/ck3pp/ck3pp/internal/preserve"
	"github.com/ck3pp/ck3pp/pkg/types"
)

// actionable turns err into a user-facing error with suggestions and a
// catalog link, along with the exit code it maps to.
func actionable(err error, operation, resource string) (*issue.ActionableError, types.ExitCode) {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae, types.ExitFailure
	}

	ctx := issue.NewErrorContext().WithOperation(operation).WithResource(resource).Wrap(err)

	var (
		copyErr    *overlay.CopyError
		missingErr *playset.MissingSourceError
	)
	switch {
	case errors.Is(err, preserve.ErrDeclined):
		return ctx.WithSuggestion("Re-run ck3pp when you agree to continue").Build(), types.ExitDeclined

	case errors.Is(err, preserve.ErrPlaysetUnreadable):
		ctx.WithIssue(issue.PlaysetLoadFailedId).
			WithSuggestion("Check that the file is a playset export in JSON, CUE or TOML").
			WithSuggestion("Run 'ck3pp inspect <playset>' to see how it resolves")

	case errors.As(err, &copyErr):
		ctx.WithResource(copyErr.Mod)
		switch {
		case copyErr.AllReason(overlay.ReasonPathTooLong):
			longest, n := copyErr.LongestDestination()
			ctx.WithIssue(issue.PathTooLongId).
				WithSuggestion(fmt.Sprintf("The longest path was %d characters: %s", n, longest)).
				WithSuggestion("Re-run with a shorter --name, or choose a shorter folder when asked")
		case copyErr.AllReason(overlay.ReasonPermissionDenied):
			ctx.WithIssue(issue.PermissionDeniedId).
				WithSuggestion("Close the game and the launcher, then try again")
		default:
			ctx.WithIssue(issue.CopyFailedId)
		}
		ctx.WithSuggestion("The partial copy was left in place; delete it before retrying")

	case errors.As(err, &missingErr):
		switch {
		case strings.EqualFold(filepath.Ext(missingErr.Path), ".mod"):
			ctx.WithIssue(issue.DescriptorUnreadableId)
		case strings.EqualFold(filepath.Ext(missingErr.Path), ".zip"):
			ctx.WithIssue(issue.ArchiveExtractFailedId)
		default:
			ctx.WithIssue(issue.ModsMissingId)
		}
		ctx.WithSuggestion(fmt.Sprintf("Check that %s exists and is readable", missingErr.Path))

	case errors.Is(err, preserve.ErrNothingToPreserve):
		ctx.WithIssue(issue.ModsMissingId).
			WithSuggestion("Enable at least one mod in the playset")

	case errors.Is(err, preserve.ErrDestinationExists):
		ctx.WithIssue(issue.DestinationExistsId).
			WithSuggestion("Pick another --name, or remove the existing folder and .mod file")

	case errors.Is(err, types.ErrInvalidModName), errors.Is(err, types.ErrInvalidFolderName):
		ctx.WithSuggestion(`Names cannot contain tabs or \ and must be at least 3 characters long`)

	case errors.Is(err, types.ErrInvalidVersionSpec):
		ctx.WithSuggestion(`Game versions look like 1.12.* and cannot contain tabs or \`)
	}
	return ctx.Build(), types.ExitFailure
}

// reportError prints err and returns the ExitError for it. The issue
// catalog entry is rendered too when verbose.
func reportError(w io.Writer, err error, operation, resource string, verbose bool) *ExitError {
	ae, code := actionable(err, operation, resource)
	if code == types.ExitDeclined {
		fmt.Fprintln(w, WarningStyle.Render("Exiting: ")+err.Error())
		return &ExitError{Code: code, Err: err}
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(verbose))
	if verbose && ae.Issue != 0 {
		if entry := issue.Get(ae.Issue); entry != nil {
			if rendered, renderErr := entry.Render("dark"); renderErr == nil {
				fmt.Fprint(w, rendered)
			}
		}
	}
	return &ExitError{Code: code, Err: ae}
}
