// SPDX-License-Identifier: MPL-2.0

package playset

import (
	"regexp"
	"strings"
)

var (
	fieldPattern = regexp.MustCompile(`(?m)^\s*(\w+)\s*=\s*"((?:[^"\\]|\\.)*)"`)
	tagsPattern  = regexp.MustCompile(`(?s)\btags\s*=\s*\{([^}]*)\}`)
	quotedString = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
)

// ModDescriptor holds the fields of a mod's own .mod file used to fill in
// what a playset export leaves out.
type ModDescriptor struct {
	Name             string
	Version          string
	SupportedVersion string
	Tags             []string
}

// ParseModDescriptor reads the fields of a .mod descriptor. Parsing is
// permissive: unknown keys, comments and malformed lines are skipped.
// When a key repeats, the first occurrence wins.
func ParseModDescriptor(text string) ModDescriptor {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var d ModDescriptor
	for _, m := range fieldPattern.FindAllStringSubmatch(text, -1) {
		value := unescape(m[2])
		switch m[1] {
		case "name":
			d.Name = firstNonEmpty(d.Name, value)
		case "version":
			d.Version = firstNonEmpty(d.Version, value)
		case "supported_version":
			d.SupportedVersion = firstNonEmpty(d.SupportedVersion, value)
		}
	}

	if m := tagsPattern.FindStringSubmatch(text); m != nil {
		for _, q := range quotedString.FindAllStringSubmatch(m[1], -1) {
			d.Tags = append(d.Tags, unescape(q[1]))
		}
	}
	return d
}

func unescape(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}

func firstNonEmpty(current, candidate string) string {
	if current != "" {
		return current
	}
	return candidate
}
