// SPDX-License-Identifier: MPL-2.0

// Package types defines the value types shared by the preserver packages:
// operator-chosen names, folder names and game version specs. Each type
// carries its own validation and reports problems through a typed error that
// unwraps to a package sentinel.
//
// This package is a leaf dependency: it imports only the standard library.
package types
