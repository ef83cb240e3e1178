// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MinModNameLength is the shortest name accepted for a preserved playset.
const MinModNameLength = 3

// ErrInvalidModName is the sentinel error wrapped by InvalidModNameError.
var ErrInvalidModName = errors.New("invalid mod name")

type (
	// ModName is the display name of the preserved playset mod, as typed by
	// the operator. It is written into both descriptor files and becomes the
	// basis of the destination folder name.
	ModName string

	// InvalidModNameError is returned when a ModName contains a tab or a
	// backslash, or is shorter than MinModNameLength.
	InvalidModNameError struct {
		Value  ModName
		Reason string
	}
)

// String returns the string representation of the ModName.
func (n ModName) String() string { return string(n) }

// Validate returns an error if the name cannot be used for a preserved mod.
// The empty name is rejected too; callers substitute the default first.
func (n ModName) Validate() error {
	s := string(n)
	switch {
	case strings.Contains(s, `\`):
		return &InvalidModNameError{Value: n, Reason: `name cannot contain \`}
	case strings.Contains(s, "\t"):
		return &InvalidModNameError{Value: n, Reason: "name cannot contain tab character"}
	case len([]rune(s)) < MinModNameLength:
		return &InvalidModNameError{Value: n, Reason: fmt.Sprintf("name must be at least %d characters long", MinModNameLength)}
	}
	return nil
}

// FolderName derives the destination folder name: characters that are
// illegal in a path component are dropped, then trailing periods.
func (n ModName) FolderName() FolderName {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(folderNameStripped, r) {
			return -1
		}
		return r
	}, string(n))
	return FolderName(strings.TrimRight(cleaned, "."))
}

// Escaped returns the name with embedded double quotes escaped for use
// inside a quoted descriptor value.
func (n ModName) Escaped() string {
	return strings.ReplaceAll(string(n), `"`, `\"`)
}

// DefaultModName is the name suggested to the operator: the source playset
// name with tabs and backslashes removed, followed by the local date.
// E.g. "My Playset (2024-05-06)".
func DefaultModName(playsetName string, date time.Time) ModName {
	cleaned := strings.NewReplacer("\t", "", `\`, "").Replace(playsetName)
	return ModName(fmt.Sprintf("%s (%s)", cleaned, date.Format(time.DateOnly)))
}

// Error implements the error interface for InvalidModNameError.
func (e *InvalidModNameError) Error() string {
	return fmt.Sprintf("invalid mod name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidModName for errors.Is() compatibility.
func (e *InvalidModNameError) Unwrap() error { return ErrInvalidModName }
