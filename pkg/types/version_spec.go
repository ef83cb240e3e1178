// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVersionSpec is the sentinel error wrapped by InvalidVersionSpecError.
var ErrInvalidVersionSpec = errors.New("invalid version spec")

type (
	// VersionSpec is a game version range such as "1.12.*" or "1.9.2".
	// A "*" matches zero or more characters, so "1.*" also matches "1".
	//
	// Only characters that would break the descriptor line are rejected;
	// a semantically meaningless spec is accepted as typed.
	VersionSpec string

	// InvalidVersionSpecError is returned when a VersionSpec contains a tab
	// or a backslash.
	InvalidVersionSpecError struct {
		Value  VersionSpec
		Reason string
	}
)

// String returns the string representation of the VersionSpec.
func (v VersionSpec) String() string { return string(v) }

// Validate returns an error if the spec cannot be written into a descriptor.
func (v VersionSpec) Validate() error {
	s := string(v)
	if strings.Contains(s, `\`) {
		return &InvalidVersionSpecError{Value: v, Reason: `game version cannot contain \`}
	}
	if strings.Contains(s, "\t") {
		return &InvalidVersionSpecError{Value: v, Reason: "game version cannot contain tab character"}
	}
	return nil
}

// Escaped returns the spec with embedded double quotes escaped.
func (v VersionSpec) Escaped() string {
	return strings.ReplaceAll(string(v), `"`, `\"`)
}

// Error implements the error interface for InvalidVersionSpecError.
func (e *InvalidVersionSpecError) Error() string {
	return fmt.Sprintf("invalid version spec %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidVersionSpec for errors.Is() compatibility.
func (e *InvalidVersionSpecError) Unwrap() error { return ErrInvalidVersionSpec }
