// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ck3pp/ck3pp/internal/issue"
	"github.com/ck3pp/ck3pp/internal/testutil"
	"github.com/ck3pp/ck3pp/pkg/types"

	"github.com/spf13/afero"
)

const testConfigDir = "/cfg/ck3pp"

func loadFromString(t *testing.T, content string) (*Config, string, error) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if content != "" {
		testutil.MustWriteFile(t, fsys, filepath.Join(testConfigDir, "config.cue"), content)
	}
	return loadWithOptions(context.Background(), LoadOptions{Fs: fsys, ConfigDirPath: testConfigDir})
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadFromString(t, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	want := DefaultConfig()
	if cfg.MaxPath != want.MaxPath || cfg.ContentRoot != "mod" || cfg.DefaultVersion != "1.12.*" {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if !slices.Equal(cfg.Ignore, []string{".git"}) {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
	if !cfg.Output.Readme || !cfg.Output.FileMap {
		t.Errorf("Output = %+v, want both enabled", cfg.Output)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q", cfg.UI.ColorScheme)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadFromString(t, `
game_directory: "/games/ck3"
max_path: 200
ignore: [".git", ".svn"]
default_version: "1.11.*"
output: file_map: false
ui: {
	color_scheme: "dark"
	verbose: true
}
`)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path != filepath.Join(testConfigDir, "config.cue") {
		t.Errorf("path = %q", path)
	}
	if cfg.GameDirectory != "/games/ck3" || cfg.MaxPath != 200 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !slices.Equal(cfg.Ignore, []string{".git", ".svn"}) {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
	if cfg.DefaultVersion != types.VersionSpec("1.11.*") {
		t.Errorf("DefaultVersion = %q", cfg.DefaultVersion)
	}
	if cfg.Output.FileMap || !cfg.Output.Readme {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark || !cfg.UI.Verbose {
		t.Errorf("UI = %+v", cfg.UI)
	}
	if got := cfg.ResolvedModDirectory(); got != filepath.Join("/games/ck3", "mod") {
		t.Errorf("ResolvedModDirectory() = %q", got)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", `container_engine: "docker"`},
		{"path limit too small", `max_path: 4`},
		{"bad color scheme", `ui: color_scheme: "neon"`},
		{"empty ignore entry", `ignore: [""]`},
		{"syntax error", `max_path: [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := loadFromString(t, tt.content)
			if err == nil {
				t.Fatal("expected error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error %T is not actionable", err)
			}
			if ae.Issue != issue.ConfigLoadFailedId {
				t.Errorf("Issue = %v, want ConfigLoadFailedId", ae.Issue)
			}
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		Fs:             afero.NewMemMapFs(),
		ConfigFilePath: "/nowhere/config.cue",
	})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{Fs: afero.NewMemMapFs()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CK3PP_MAX_PATH", "120")
	t.Setenv("CK3PP_UI_VERBOSE", "true")
	t.Setenv("CK3PP_MOD_DIRECTORY", "/elsewhere")

	cfg, _, err := loadFromString(t, "max_path: 200\n")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxPath != 120 {
		t.Errorf("MaxPath = %d, want environment value 120", cfg.MaxPath)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose not taken from environment")
	}
	if got := cfg.ResolvedModDirectory(); got != "/elsewhere" {
		t.Errorf("ResolvedModDirectory() = %q", got)
	}
}

func TestLoad_InvalidEnvironmentValue(t *testing.T) {
	t.Setenv("CK3PP_DEFAULT_VERSION", `1.12\*`)

	_, _, err := loadFromString(t, "")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "game version cannot contain") {
		t.Errorf("err = %v, want the field reason", err)
	}
}

func TestGenerateCUE_RoundTrips(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.GameDirectory = `C:\Users\me\Documents\Paradox Interactive\Crusader Kings III`
	cfg.Ignore = []string{".git", "thumbs.db"}
	cfg.UI.Accessible = true

	loaded, _, err := loadFromString(t, GenerateCUE(cfg))
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if loaded.GameDirectory != cfg.GameDirectory {
		t.Errorf("GameDirectory = %q", loaded.GameDirectory)
	}
	if !slices.Equal(loaded.Ignore, cfg.Ignore) || !loaded.UI.Accessible {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	SetConfigDirOverride(testConfigDir)
	t.Cleanup(Reset)

	fsys := afero.NewMemMapFs()
	path, err := CreateDefaultConfig(fsys, false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig: %v", err)
	}
	if !strings.Contains(testutil.MustReadFile(t, fsys, path), "max_path: 260") {
		t.Error("default config missing max_path")
	}

	testutil.MustWriteFile(t, fsys, path, "max_path: 100\n")
	if _, err := CreateDefaultConfig(fsys, false); err != nil {
		t.Fatal(err)
	}
	if got := testutil.MustReadFile(t, fsys, path); got != "max_path: 100\n" {
		t.Errorf("existing file overwritten without force: %q", got)
	}

	if _, err := CreateDefaultConfig(fsys, true); err != nil {
		t.Fatal(err)
	}
	if got := testutil.MustReadFile(t, fsys, path); got == "max_path: 100\n" {
		t.Error("force did not overwrite")
	}
}

func TestDefaultConfig_FollowsHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	cfg := DefaultConfig()
	if !strings.HasPrefix(cfg.GameDirectory, home) {
		t.Errorf("GameDirectory = %q, want it under %q", cfg.GameDirectory, home)
	}
	if !strings.HasSuffix(cfg.GameDirectory, "Crusader Kings III") {
		t.Errorf("GameDirectory = %q", cfg.GameDirectory)
	}
	if got, want := cfg.ResolvedModDirectory(), filepath.Join(cfg.GameDirectory, "mod"); got != want {
		t.Errorf("ResolvedModDirectory() = %q, want %q", got, want)
	}

	cfg.ModDirectory = "/elsewhere"
	if got := cfg.ResolvedModDirectory(); got != "/elsewhere" {
		t.Errorf("ResolvedModDirectory() = %q, want the explicit directory", got)
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if ok, errs := cs.IsValid(); !ok || errs != nil {
			t.Errorf("%q.IsValid() = %v, %v", cs, ok, errs)
		}
	}

	ok, errs := ColorScheme("neon").IsValid()
	if ok || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("neon.IsValid() = %v, %v", ok, errs)
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxPath = 10
	cfg.Ignore = []string{"a/b"}

	ok, errs := cfg.IsValid()
	if ok || len(errs) != 1 {
		t.Fatalf("IsValid() = %v, %v", ok, errs)
	}
	var ice *InvalidConfigError
	if !errors.As(errs[0], &ice) || len(ice.FieldErrors) != 2 {
		t.Fatalf("errs[0] = %v", errs[0])
	}
	if !errors.Is(ice.FieldErrors[0], ErrInvalidMaxPath) || !errors.Is(ice.FieldErrors[1], ErrInvalidIgnoreEntry) {
		t.Errorf("FieldErrors = %v", ice.FieldErrors)
	}
}
