// SPDX-License-Identifier: MPL-2.0

package versionrange

import (
	"testing"

	"github.com/ck3pp/ck3pp/pkg/types"
)

func TestMax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []types.VersionSpec
		want       types.VersionSpec
	}{
		{"numeric ordering", []types.VersionSpec{"1.9.*", "1.12.*", "1.2.5"}, "1.12.*"},
		{"empty falls back", nil, DefaultSpec},
		{"blank entries ignored", []types.VersionSpec{"", "  "}, DefaultSpec},
		{"higher minimum wins over wider range", []types.VersionSpec{"1.*", "1.3.*"}, "1.3.*"},
		{"order independent", []types.VersionSpec{"1.3.*", "1.*"}, "1.3.*"},
		{"exact beats lower wildcard", []types.VersionSpec{"1.11.*", "1.12.0"}, "1.12.0"},
		{"wildcard beats exact with same minimum", []types.VersionSpec{"1.12", "1.12.*"}, "1.12.*"},
		{"patch wildcard beats exact patch", []types.VersionSpec{"1.12.2", "1.12.2.*"}, "1.12.2.*"},
		{"single candidate", []types.VersionSpec{"1.0.0"}, "1.0.0"},
		{"huge numbers do not overflow", []types.VersionSpec{"99999999999999999999999.1", "1.1"}, "99999999999999999999999.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Max(tt.candidates, DefaultSpec); got != tt.want {
				t.Errorf("Max(%q) = %q, want %q", tt.candidates, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b types.VersionSpec
		want int
	}{
		{"1.2", "1.10", -1},
		{"1.10", "1.2", 1},
		{"1.2", "1.2", 0},
		{"1.02", "1.2", 0},
		{"1.beta", "1.0", -1},
		{"1.alpha", "1.beta", -1},
		{"1.*", "1.0", -1},
		{"1.*.5", "1.3.5", -1},
		{"1.3.*", "1.3", 1},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestKeyStripsTrailingWildcard(t *testing.T) {
	t.Parallel()

	k := Key("1.12.*")
	if len(k.Min) != 3 {
		t.Fatalf("Min key = %v, want 3 tokens", k.Min)
	}
	if len(k.Max) != 5 || k.Max[4].kind != kindWildcard {
		t.Fatalf("Max key = %v, want trailing wildcard", k.Max)
	}

	inner := Key("1.*.3")
	for _, tok := range inner.Min {
		if tok.kind == kindWildcard {
			t.Errorf("Min key of 1.*.3 contains a wildcard: %v", inner.Min)
		}
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := tokenize("1.12.*")
	want := []token{
		{kindNumber, "1"}, {kindText, "."}, {kindNumber, "12"}, {kindText, "."}, {kindWildcard, "*"},
	}
	if len(got) != len(want) {
		t.Fatalf("tokenize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}

	if got := tokenize("v1_2-rc"); len(got) != 3 || got[0].value != "v1_2" || got[1].value != "-" {
		t.Errorf("tokenize(v1_2-rc) = %v", got)
	}
}

func TestValidateOverride(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    types.VersionSpec
		wantErr bool
	}{
		{"1.13.*", "1.13.*", false},
		{"  1.2 ", "1.2", false},
		{"not a version", "not a version", false},
		{"1.\t2", "", true},
		{`1.2\`, "", true},
	}

	for _, tt := range tests {
		got, err := ValidateOverride(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOverride(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ValidateOverride(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
