// SPDX-License-Identifier: MPL-2.0

package versionrange

import (
	"strings"
	"unicode"

	"github.com/ck3pp/ck3pp/pkg/types"
)

// DefaultSpec is used when no mod declares a usable required version.
const DefaultSpec types.VersionSpec = "1.12.*"

type (
	tokenKind int

	// token is one lexical element of a spec.
	token struct {
		kind  tokenKind
		value string
	}

	// SortKey orders specs. Min is the lowest version the range admits,
	// Max the highest; specs compare by Min first, then by Max.
	SortKey struct {
		Min []token
		Max []token
	}
)

const (
	// kindText is a non-numeric word or separator run. Sorts below numbers.
	kindText tokenKind = iota
	// kindNumber is a run of ASCII digits, compared numerically.
	kindNumber
	// kindWildcard is "*". Only present in the Max key, where it sorts
	// above every concrete token.
	kindWildcard
)

// Key computes the sort key of spec.
func Key(spec types.VersionSpec) SortKey {
	tokens := tokenize(string(spec))

	minTokens := tokens
	if n := len(tokens); n >= 2 && tokens[n-2] == (token{kindText, "."}) && tokens[n-1].kind == kindWildcard {
		minTokens = tokens[:n-2]
	}

	key := SortKey{
		Min: make([]token, 0, len(minTokens)),
		Max: tokens,
	}
	for _, t := range minTokens {
		if t.kind != kindWildcard {
			key.Min = append(key.Min, t)
		}
	}
	return key
}

// Compare returns -1, 0 or +1 as a orders below, equal to or above b.
func Compare(a, b types.VersionSpec) int {
	return Key(a).Compare(Key(b))
}

// Compare orders two keys: by minimum version, then by maximum version.
func (k SortKey) Compare(other SortKey) int {
	if c := compareTokens(k.Min, other.Min); c != 0 {
		return c
	}
	return compareTokens(k.Max, other.Max)
}

// ValidateOverride checks an operator-typed spec. Only tab and backslash are
// rejected; a spec that matches no real game version is accepted as typed.
func ValidateOverride(spec string) (types.VersionSpec, error) {
	v := types.VersionSpec(strings.TrimSpace(spec))
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

// Max returns the highest spec among candidates. Blank candidates are
// ignored; if none remain, fallback is returned. On ties the first
// candidate wins.
func Max(candidates []types.VersionSpec, fallback types.VersionSpec) types.VersionSpec {
	best := fallback
	var bestKey SortKey
	found := false
	for _, c := range candidates {
		if strings.TrimSpace(string(c)) == "" {
			continue
		}
		k := Key(c)
		if !found || k.Compare(bestKey) > 0 {
			best, bestKey, found = c, k, true
		}
	}
	return best
}

func tokenize(s string) []token {
	var tokens []token
	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '*':
			tokens = append(tokens, token{kind: kindWildcard, value: "*"})
			i++
		case isWord(r):
			j := i
			for j < len(runes) && isWord(runes[j]) {
				j++
			}
			tokens = append(tokens, wordToken(string(runes[i:j])))
			i = j
		default:
			j := i
			for j < len(runes) && !isWord(runes[j]) && runes[j] != '*' {
				j++
			}
			tokens = append(tokens, token{kind: kindText, value: string(runes[i:j])})
			i = j
		}
	}
	return tokens
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordToken(w string) token {
	for i := 0; i < len(w); i++ {
		if w[i] < '0' || w[i] > '9' {
			return token{kind: kindText, value: w}
		}
	}
	return token{kind: kindNumber, value: w}
}

func compareTokens(a, b []token) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareToken(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func compareToken(a, b token) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	if a.kind == kindNumber {
		return compareNumeric(a.value, b.value)
	}
	return strings.Compare(a.value, b.value)
}

// compareNumeric compares digit strings of any length without parsing.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
