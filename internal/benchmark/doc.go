// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks for the merge hot paths:
//   - playset and mod descriptor parsing
//   - version range selection
//   - the overlay copy over an in-memory filesystem
//   - descriptor synthesis
//
// Profiles for PGO are generated with:
//
//	go test ./internal/benchmark -run '^$' -bench . -cpuprofile default.pgo
package benchmark
