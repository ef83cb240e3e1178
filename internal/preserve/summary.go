// SPDX-License-Identifier: MPL-2.0

package preserve

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ck3pp/ck3pp/internal/overlay"
	"github.com/ck3pp/ck3pp/internal/playset"
	"github.com/ck3pp/ck3pp/internal/recovery"
	"github.com/ck3pp/ck3pp/pkg/types"
	"github.com/docker/go-units"
)

// Summary describes a finished or failed preservation.
type Summary struct {
	Name        types.ModName
	PlaysetName string
	GameVersion types.VersionSpec
	// Destination is the merged folder after any renames.
	Destination string
	// PointerPath is empty until the descriptor files are written.
	PointerPath string
	Mods        []playset.ModRecord
	Missing     []playset.ModRecord
	Disabled    []playset.ModRecord
	Renames     []recovery.Rename
	// Removed are top-level files deleted from the merged folder.
	Removed []string
	// Attributed counts files in the content manifest.
	Attributed int
	Stats      overlay.Stats
}

// String renders the summary for the terminal.
func (s *Summary) String() string {
	var sb strings.Builder
	if s.PointerPath != "" {
		fmt.Fprintf(&sb, "Preserved playset mod %q created in %s\n", s.Name, s.Destination)
	} else {
		fmt.Fprintf(&sb, "Preservation of %q stopped; partial copy left in %s\n", s.Name, s.Destination)
	}
	fmt.Fprintf(&sb, "  source playset: %s\n", s.PlaysetName)
	fmt.Fprintf(&sb, "  game version:   %s\n", s.GameVersion)
	fmt.Fprintf(&sb, "  mods merged:    %d of %d\n", s.Stats.Mods, len(s.Mods))
	fmt.Fprintf(&sb, "  copied:         %d files in %d folders, %s\n",
		s.Stats.Files, s.Stats.Dirs, units.HumanSize(float64(s.Stats.Bytes)))
	if len(s.Missing) > 0 {
		fmt.Fprintf(&sb, "  skipped (missing):  %s\n", names(s.Missing))
	}
	if len(s.Disabled) > 0 {
		fmt.Fprintf(&sb, "  skipped (disabled): %s\n", names(s.Disabled))
	}
	for _, r := range s.Renames {
		fmt.Fprintf(&sb, "  renamed %s -> %s\n", filepath.Base(r.From), filepath.Base(r.To))
	}
	if len(s.Removed) > 0 {
		fmt.Fprintf(&sb, "  removed top-level files: %s\n", strings.Join(s.Removed, ", "))
	}
	return sb.String()
}

func names(mods []playset.ModRecord) string {
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = m.DisplayName
	}
	return strings.Join(out, ", ")
}
