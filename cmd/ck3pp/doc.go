// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for ck3pp.
//
// The root command is styled by fang. Subcommands receive an App, the
// composition root holding the config provider, the filesystem and the
// prompt factory, so tests can run commands against an in-memory filesystem.
package cmd
