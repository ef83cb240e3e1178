// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

func homeEnvVar() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

func TestSetHomeDir(t *testing.T) {
	envVar := homeEnvVar()
	original := os.Getenv(envVar)
	tmpDir := t.TempDir()

	cleanup := SetHomeDir(t, tmpDir)
	if got := os.Getenv(envVar); got != tmpDir {
		t.Errorf("%s = %q, want %q", envVar, got, tmpDir)
	}

	cleanup()
	if got := os.Getenv(envVar); got != original {
		t.Errorf("after cleanup %s = %q, want %q", envVar, got, original)
	}
}

func TestSetHomeDir_WithTCleanup(t *testing.T) {
	envVar := homeEnvVar()
	original := os.Getenv(envVar)
	tmpDir := t.TempDir()

	t.Run("subtest", func(t *testing.T) {
		t.Cleanup(SetHomeDir(t, tmpDir))

		if got := os.Getenv(envVar); got != tmpDir {
			t.Errorf("%s = %q, want %q", envVar, got, tmpDir)
		}
	})

	if got := os.Getenv(envVar); got != original {
		t.Errorf("after subtest %s = %q, want %q", envVar, got, original)
	}
}
