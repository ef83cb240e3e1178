// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/ck3pp/config.cue (or $XDG_CONFIG_HOME on Linux,
// ~/Library/Application Support/ck3pp/config.cue on macOS, %APPDATA%\ck3pp\config.cue
// on Windows), validated against the embedded config_schema.cue and overlaid with
// CK3PP_* environment variables. It locates the game's user and Workshop directories,
// sets the path length limit used for recovery and selects the generated files.
package config
