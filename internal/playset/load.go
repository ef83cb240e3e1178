// SPDX-License-Identifier: MPL-2.0

package playset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ck3pp/ck3pp/pkg/cueutil"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

//go:embed playset_schema.cue
var playsetSchema []byte

// Load reads a playset export. The format is chosen by extension: .toml is
// TOML, anything else (.json, .cue) is parsed as CUE, which accepts JSON.
func Load(fs afero.Fs, path string) (*File, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return ParseTOML(data, path)
	}

	result, err := cueutil.ParseFile[File](fs, playsetSchema, path, "#Playset")
	if err != nil {
		return nil, err
	}
	return normalize(result.Value), nil
}

// Parse decodes a JSON or CUE playset export.
func Parse(data []byte, filename string) (*File, error) {
	result, err := cueutil.ParseAndDecode[File](playsetSchema, data, "#Playset", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	return normalize(result.Value), nil
}

// ParseTOML decodes a TOML playset export. The document is validated
// against the same schema as the JSON form.
func ParseTOML(data []byte, filename string) (*File, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return Parse(asJSON, filename)
}

// normalize orders entries by position when every entry carries one.
// Otherwise the file order is the load order.
func normalize(f *File) *File {
	for _, e := range f.Mods {
		if e.Position == nil {
			return f
		}
	}
	slices.SortStableFunc(f.Mods, func(a, b Entry) int {
		return *a.Position - *b.Position
	})
	return f
}
