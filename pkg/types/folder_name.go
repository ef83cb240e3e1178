// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// folderNameStripped lists the characters silently removed when a
	// ModName is turned into a folder name.
	folderNameStripped = `*"/:<>?|`
	// folderNameIllegal lists the characters rejected in an operator-typed
	// folder name. It is folderNameStripped plus the backslash.
	folderNameIllegal = `*"/:<>?\|`
)

// ErrInvalidFolderName is the sentinel error wrapped by InvalidFolderNameError.
var ErrInvalidFolderName = errors.New("invalid folder name")

type (
	// FolderName is a single path component naming the destination folder
	// of a preserved playset. The pointer file beside it is named
	// "<FolderName>.mod".
	FolderName string

	// InvalidFolderNameError is returned when a FolderName is empty, contains
	// a tab or a character illegal in a path component, or ends with a period.
	InvalidFolderNameError struct {
		Value  FolderName
		Reason string
	}
)

// String returns the string representation of the FolderName.
func (f FolderName) String() string { return string(f) }

// PointerFileName returns the name of the sibling pointer file.
func (f FolderName) PointerFileName() string { return string(f) + ".mod" }

// Validate returns an error if the folder name would be rejected or
// silently altered by the filesystem.
func (f FolderName) Validate() error {
	s := string(f)
	if strings.TrimSpace(s) == "" {
		return &InvalidFolderNameError{Value: f, Reason: "folder name cannot be empty"}
	}
	if strings.Contains(s, "\t") {
		return &InvalidFolderNameError{Value: f, Reason: "folder name cannot contain tab character"}
	}
	if strings.HasSuffix(s, ".") {
		return &InvalidFolderNameError{Value: f, Reason: "folder name cannot end with ."}
	}
	if bad := IllegalFolderChars(s); bad != "" {
		return &InvalidFolderNameError{Value: f, Reason: "folder name cannot contain " + bad}
	}
	return nil
}

// IllegalFolderChars returns every character of s that is illegal in a
// folder name, in order of appearance. Empty means none.
func IllegalFolderChars(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(folderNameIllegal, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Error implements the error interface for InvalidFolderNameError.
func (e *InvalidFolderNameError) Error() string {
	return fmt.Sprintf("invalid folder name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidFolderName for errors.Is() compatibility.
func (e *InvalidFolderNameError) Unwrap() error { return ErrInvalidFolderName }
