// SPDX-License-Identifier: MPL-2.0

// Package versionrange orders game version range specs so a sensible default
// can be picked for a merged playset: the highest version any of its mods
// requires.
//
// A spec is a sequence of tokens: runs of word characters, runs of other
// separators such as ".", and the wildcard "*", which matches zero or more
// characters. "1.*" therefore matches "1", "1.3" and "1.12.4".
package versionrange
