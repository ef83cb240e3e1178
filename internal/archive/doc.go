// SPDX-License-Identifier: MPL-2.0

// Package archive extracts Paradox Mods zip archives into temporary
// directories so they can be merged like any other mod directory.
package archive
