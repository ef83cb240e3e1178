// SPDX-License-Identifier: MPL-2.0

// Package playset turns a launcher playset export into the ordered list of
// mods to merge.
//
// An export is a JSON, CUE or TOML document validated against the embedded
// #Playset schema. Each entry names its content by a local directory, a
// Paradox Mods archive or a Steam Workshop item ID. Resolve maps entries to
// ModRecords and sets aside the ones that are missing on disk or disabled
// in the playset, the way the launcher shows them.
package playset
