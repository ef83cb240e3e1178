// SPDX-License-Identifier: MPL-2.0

// Package preserve runs the whole preservation of a playset: it resolves the
// playset's mods, settles the game version and the destination name with
// the operator, merges the mods with path length recovery and writes the
// descriptor files of the preserved mod.
package preserve
