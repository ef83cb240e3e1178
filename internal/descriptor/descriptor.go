// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ck3pp/ck3pp/internal/overlay"
	"github.com/ck3pp/ck3pp/internal/playset"
	"github.com/ck3pp/ck3pp/pkg/types"
)

const (
	// DescriptorVersion is the version written for the preserved mod.
	DescriptorVersion = "1.0.0"
	// DefaultContentRoot is the launcher's mod directory, relative to the
	// game's user directory.
	DefaultContentRoot = "mod"
)

var replacePathPattern = regexp.MustCompile(`^\s*replace_path\s*=\s*"([^"]*(?:\\"[^"]*)*)"\s*(?:#.*)?$`)

type (
	// Input is everything the preserved mod's metadata is derived from.
	Input struct {
		Name        types.ModName
		Folder      types.FolderName
		GameVersion types.VersionSpec
		// Mods are the merged mods in load order.
		Mods       []playset.ModRecord
		Provenance *overlay.Provenance
		// PlaysetName is the source playset, for the README and file map.
		PlaysetName string
		Date        time.Time
		// ContentRoot prefixes the pointer file's path. Defaults to
		// DefaultContentRoot.
		ContentRoot string
	}

	// Output holds the synthesized text files.
	Output struct {
		// Descriptor is descriptor.mod, placed inside the merged folder.
		Descriptor string
		// Pointer is <folder>.mod, placed beside the merged folder.
		Pointer string
		// ContentManifest maps each merged file to the mod it came from.
		ContentManifest string
		// Readme describes where the mod came from.
		Readme string
	}
)

// Synthesize builds the metadata files. The result depends only on in.
func Synthesize(in Input) (Output, error) {
	if err := in.Name.Validate(); err != nil {
		return Output{}, err
	}
	if err := in.Folder.Validate(); err != nil {
		return Output{}, err
	}
	if err := in.GameVersion.Validate(); err != nil {
		return Output{}, err
	}

	root := in.ContentRoot
	if root == "" {
		root = DefaultContentRoot
	}

	head := []string{`version="` + DescriptorVersion + `"`, "tags={"}
	for _, tag := range UnionTags(in.Mods) {
		head = append(head, "\t\""+tag+"\"")
	}
	head = append(head,
		"}",
		`name="`+in.Name.Escaped()+`"`,
		`supported_version="`+in.GameVersion.Escaped()+`"`,
	)
	var tail []string
	for _, p := range UnionReplacePaths(in.Mods) {
		tail = append(tail, `replace_path="`+p+`"`)
	}
	pathLine := `path="` + path.Join(root, in.Folder.String()) + `"`

	return Output{
		Descriptor:      lines(head, tail),
		Pointer:         lines(head, []string{pathLine}, tail),
		ContentManifest: contentManifest(in),
		Readme:          readme(in),
	}, nil
}

// UnionTags returns every tag of mods once, sorted, with double quotes
// escaped.
func UnionTags(mods []playset.ModRecord) []string {
	seen := make(map[string]struct{})
	for _, m := range mods {
		for _, tag := range m.Tags {
			seen[strings.ReplaceAll(tag, `"`, `\"`)] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// UnionReplacePaths returns every replace_path directive of the mods' own
// descriptors once, sorted. Lines are matched permissively: surrounding
// whitespace, a trailing comment and CRLF endings are accepted.
func UnionReplacePaths(mods []playset.ModRecord) []string {
	seen := make(map[string]struct{})
	for _, m := range mods {
		for line := range strings.Lines(m.RawManifest) {
			line = strings.TrimRight(line, "\r\n")
			if match := replacePathPattern.FindStringSubmatch(line); match != nil {
				seen[match[1]] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func contentManifest(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Files of %q, merged from playset %q on %s\n", in.Name.String(), in.PlaysetName, in.Date.Format(time.DateOnly))
	fmt.Fprintf(&b, "# <path> <- [<mod>]\n")
	if in.Provenance != nil {
		for _, a := range in.Provenance.Sorted() {
			fmt.Fprintf(&b, "%s <- [%s]\n", a.Path, a.Mod)
		}
	}
	return b.String()
}

func readme(in Input) string {
	var b strings.Builder
	b.WriteString("This mod was generated using ck3pp, the Crusader Kings 3 Playset Preserver.\n\n")
	fmt.Fprintf(&b, "Source playset: %s\n", in.PlaysetName)
	fmt.Fprintf(&b, "Date: %s\n", in.Date.Format(time.DateOnly))
	fmt.Fprintf(&b, "Game version: %s\n", in.GameVersion)
	b.WriteString("Contents:\n")
	for _, m := range in.Mods {
		if m.Version != "" {
			fmt.Fprintf(&b, "%s (%s)\n", m.DisplayName, m.Version)
		} else {
			fmt.Fprintf(&b, "%s\n", m.DisplayName)
		}
	}
	return b.String()
}

// lines joins groups with LF endings, including a final one.
func lines(groups ...[]string) string {
	var b strings.Builder
	for _, g := range groups {
		for _, l := range g {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
