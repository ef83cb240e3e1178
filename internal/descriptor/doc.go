// SPDX-License-Identifier: MPL-2.0

// Package descriptor writes the metadata of a preserved playset mod: the
// descriptor.mod inside the merged folder, the <folder>.mod pointer file the
// launcher reads from the mod directory, a README and a map of which mod
// supplied each file.
//
// Synthesize is a pure function of its Input; Write puts the result on disk.
package descriptor
