// SPDX-License-Identifier: MPL-2.0

// Package overlay copies mods into one destination directory in load order.
//
// Later mods overwrite files of earlier ones at the same relative path, the
// way the game itself resolves conflicts. The Driver records which mod
// supplied each file (Provenance) and reports failed file operations as a
// single *CopyError whose failures carry a classified Reason, so callers can
// dispatch on the kind of failure instead of on error text.
package overlay
