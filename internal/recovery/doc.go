// SPDX-License-Identifier: MPL-2.0

// Package recovery runs the overlay copy and recovers from Windows path
// length failures by renaming the destination folder.
//
// When every failure of a mod is a path that is too long, the Controller
// asks the operator for a shorter folder name, renames the partially filled
// destination and resumes with the mods still queued. Mods already copied
// are not copied again. Any other failure ends the run unchanged.
package recovery
