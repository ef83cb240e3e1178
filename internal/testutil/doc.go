// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv, SetHomeDir),
// file tree setup on any afero.Fs (MustWriteFile, MustMkdirAll, MustReadFile),
// a deterministic clock (FakeClock) and a filesystem that rejects long paths
// the way Windows does (LongPathFs).
package testutil
