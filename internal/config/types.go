// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ck3pp/ck3pp/internal/overlay"
	"github.com/ck3pp/ck3pp/internal/versionrange"
	"github.com/ck3pp/ck3pp/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// minMaxPath is the shortest accepted path limit.
	minMaxPath = 32
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidMaxPath is returned when the path limit is out of range.
	ErrInvalidMaxPath = errors.New("invalid max path")
	// ErrInvalidIgnoreEntry is returned when an ignore entry is blank or holds a separator.
	ErrInvalidIgnoreEntry = errors.New("invalid ignore entry")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the terminal palette.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// GameDirectory is the Crusader Kings III user directory.
		GameDirectory string `json:"game_directory" mapstructure:"game_directory"`
		// ModDirectory receives preserved playsets. Empty means <GameDirectory>/mod.
		ModDirectory string `json:"mod_directory" mapstructure:"mod_directory"`
		// WorkshopDirectory holds Steam Workshop items by ID.
		WorkshopDirectory string `json:"workshop_directory" mapstructure:"workshop_directory"`
		// MaxPath is the path length at which writes are treated as too long.
		MaxPath int `json:"max_path" mapstructure:"max_path"`
		// Ignore lists entry names never copied from a mod.
		Ignore []string `json:"ignore" mapstructure:"ignore"`
		// DefaultVersion is offered when no mod declares a game version.
		DefaultVersion types.VersionSpec `json:"default_version" mapstructure:"default_version"`
		// ContentRoot prefixes the path in the pointer .mod file.
		ContentRoot string `json:"content_root" mapstructure:"content_root"`
		// Output selects optional generated files.
		Output OutputConfig `json:"output" mapstructure:"output"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// OutputConfig selects optional generated files.
	OutputConfig struct {
		// Readme writes README.txt into the preserved mod.
		Readme bool `json:"readme" mapstructure:"readme"`
		// FileMap writes file_to_mod_map.txt into the preserved mod.
		FileMap bool `json:"file_map" mapstructure:"file_map"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Accessible uses plain prompts suited to screen readers.
		Accessible bool `json:"accessible" mapstructure:"accessible"`
	}
)

// ResolvedModDirectory returns ModDirectory, or <GameDirectory>/mod when unset.
func (c Config) ResolvedModDirectory() string {
	if c.ModDirectory != "" {
		return c.ModDirectory
	}
	if c.GameDirectory == "" {
		return ""
	}
	return joinPath(c.GameDirectory, "mod")
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if c.MaxPath < minMaxPath {
		errs = append(errs, fmt.Errorf("%w: max_path %d is below %d", ErrInvalidMaxPath, c.MaxPath, minMaxPath))
	}
	for i, name := range c.Ignore {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) {
			errs = append(errs, fmt.Errorf("%w: ignore[%d] = %q", ErrInvalidIgnoreEntry, i, name))
		}
	}
	if err := c.DefaultVersion.Validate(); err != nil {
		errs = append(errs, err)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration. Directories are filled
// from platform conventions when they can be found.
func DefaultConfig() *Config {
	return &Config{
		GameDirectory:     defaultGameDirectory(),
		WorkshopDirectory: defaultWorkshopDirectory(),
		MaxPath:           overlay.DefaultPathLimit,
		Ignore:            append([]string(nil), overlay.DefaultIgnore...),
		DefaultVersion:    versionrange.DefaultSpec,
		ContentRoot:       "mod",
		Output: OutputConfig{
			Readme:  true,
			FileMap: true,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}
