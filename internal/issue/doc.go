// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries what was being done, on what, and what the operator
// can try next. Issues are longer Markdown explanations of the failures an
// operator is most likely to meet while preserving a playset, rendered in the
// terminal with glamour.
package issue
