// SPDX-License-Identifier: MPL-2.0

package playset

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ck3pp/ck3pp/internal/testutil"
	"github.com/spf13/afero"
)

func TestParse(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"game": "ck3",
		"name": "Big Playset",
		"mods": [
			{"displayName": "Unofficial Patch", "dirPath": "/mods/up"},
			{"displayName": "Map Mod", "enabled": false, "steamId": "2217534250"}
		]
	}`)

	f, err := Parse(data, "playset.json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Name != "Big Playset" {
		t.Errorf("Name = %q, want %q", f.Name, "Big Playset")
	}
	if len(f.Mods) != 2 {
		t.Fatalf("len(Mods) = %d, want 2", len(f.Mods))
	}
	if !f.Mods[0].IsEnabled() {
		t.Error("first mod should default to enabled")
	}
	if f.Mods[1].IsEnabled() {
		t.Error("second mod should be disabled")
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantSub string
	}{
		{"missing name", `{"mods": []}`, "name"},
		{"empty display name", `{"name": "p", "mods": [{"displayName": ""}]}`, "mods[0].displayName"},
		{"non numeric steam id", `{"name": "p", "mods": [{"displayName": "a", "steamId": "abc"}]}`, "steamId"},
		{"negative position", `{"name": "p", "mods": [{"displayName": "a", "position": -1}]}`, "position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data), "playset.json")
			if err == nil {
				t.Fatal("Parse() error = nil, want schema error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestParse_OrdersByPosition(t *testing.T) {
	t.Parallel()

	data := []byte(`{"name": "p", "mods": [
		{"displayName": "third", "position": 2},
		{"displayName": "first", "position": 0},
		{"displayName": "second", "position": 1}
	]}`)

	f, err := Parse(data, "playset.json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	var got []string
	for _, m := range f.Mods {
		got = append(got, m.DisplayName)
	}
	if want := []string{"first", "second", "third"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.MustWriteFile(t, fs, "/exports/playset.toml", `
name = "Toml Playset"

[[mods]]
displayName = "One"
dirPath = "one"
tags = ["Gameplay", "Fixes"]

[[mods]]
displayName = "Two"
steamId = "12345"
enabled = false
`)

	f, err := Load(fs, "/exports/playset.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Name != "Toml Playset" || len(f.Mods) != 2 {
		t.Fatalf("Load() = %+v", f)
	}
	if !slices.Equal(f.Mods[0].Tags, []string{"Gameplay", "Fixes"}) {
		t.Errorf("Tags = %v", f.Mods[0].Tags)
	}
	if f.Mods[1].IsEnabled() {
		t.Error("second mod should be disabled")
	}
}

func TestLoad_JSONFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.MustWriteFile(t, fs, "/p.json", `{"name": "J", "mods": [{"displayName": "A"}]}`)

	f, err := Load(fs, "/p.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Name != "J" {
		t.Errorf("Name = %q", f.Name)
	}

	if _, err := Load(fs, "/absent.json"); err == nil {
		t.Error("Load() of an absent file should fail")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	root := filepath.FromSlash("/game")
	workshop := filepath.FromSlash("/steam/workshop/1158310")

	testutil.MustWriteFile(t, fs, filepath.Join(root, "mod", "local", "descriptor.mod"),
		"version=\"2.1\"\ntags={\n\t\"Gameplay\"\n\t\"Fixes\"\n}\nname=\"Local\"\nsupported_version=\"1.11.*\"\n")
	testutil.MustWriteFile(t, fs, filepath.Join(workshop, "111", "common", "x.txt"), "x")
	testutil.MustWriteFile(t, fs, filepath.Join(root, "mod", "ugc_111.mod"),
		"name=\"Steam\"\nversion=\"0.9\"\nsupported_version=\"1.12.*\"\nreplace_path=\"history/characters\"\n")
	testutil.MustWriteFile(t, fs, filepath.Join(workshop, "222", "x.txt"), "x")

	f := &File{Name: "Mixed", Mods: []Entry{
		{DisplayName: "Local", DirPath: filepath.Join(root, "mod", "local")},
		{DisplayName: "Gone", Status: "not_found", DirPath: filepath.Join(root, "mod", "gone")},
		{DisplayName: "Steam", SteamID: "111", RegistryPath: "mod/ugc_111.mod", Tags: []string{"Map"}},
		{DisplayName: "Off", SteamID: "222", Enabled: boolPtr(false)},
		{DisplayName: "Vanished", SteamID: "333"},
	}}

	res, err := Resolve(fs, f, ResolveOptions{ContentRoot: root, WorkshopDir: workshop})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := names(res.Mods); !slices.Equal(got, []string{"Local", "Steam"}) {
		t.Errorf("Mods = %v", got)
	}
	if got := names(res.Missing); !slices.Equal(got, []string{"Gone", "Vanished"}) {
		t.Errorf("Missing = %v", got)
	}
	if got := names(res.Disabled); !slices.Equal(got, []string{"Off"}) {
		t.Errorf("Disabled = %v", got)
	}

	local := res.Mods[0]
	if local.Version != "2.1" || local.RequiredVersion != "1.11.*" {
		t.Errorf("Local filled from descriptor = %+v", local)
	}
	if !slices.Equal(local.Tags, []string{"Gameplay", "Fixes"}) {
		t.Errorf("Local tags = %v", local.Tags)
	}

	steam := res.Mods[1]
	if steam.SourcePath != filepath.Join(workshop, "111") {
		t.Errorf("Steam SourcePath = %q", steam.SourcePath)
	}
	if !slices.Equal(steam.Tags, []string{"Map"}) {
		t.Errorf("export tags should win, got %v", steam.Tags)
	}
	if !strings.Contains(steam.RawManifest, "replace_path") {
		t.Errorf("RawManifest = %q", steam.RawManifest)
	}
}

func TestResolve_MissingRegistryDescriptor(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	testutil.MustMkdirAll(t, fs, "/mods/a")

	f := &File{Name: "p", Mods: []Entry{
		{DisplayName: "A", DirPath: "/mods/a", RegistryPath: "mod/a.mod"},
	}}

	_, err := Resolve(fs, f, ResolveOptions{ContentRoot: "/game"})
	if !errors.Is(err, ErrMissingSource) {
		t.Fatalf("Resolve() error = %v, want ErrMissingSource", err)
	}
	var mse *MissingSourceError
	if !errors.As(err, &mse) || mse.Mod != "A" {
		t.Errorf("error = %#v, want MissingSourceError for A", err)
	}
}

func TestResolve_ArchiveAndRelativePaths(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	base := filepath.FromSlash("/exports")
	testutil.MustWriteFile(t, fs, filepath.Join(base, "pdx", "mod.zip"), "PK")
	testutil.MustMkdirAll(t, fs, filepath.Join(base, "local"))

	f := &File{Name: "p", Mods: []Entry{
		{DisplayName: "Zip", ArchivePath: "pdx/mod.zip"},
		{DisplayName: "Dir", DirPath: "local"},
	}}

	res, err := Resolve(fs, f, ResolveOptions{BaseDir: base})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(res.Mods) != 2 {
		t.Fatalf("Mods = %v, missing = %v", names(res.Mods), names(res.Missing))
	}
	if !res.Mods[0].IsArchive() || res.Mods[0].ArchivePath != filepath.Join(base, "pdx", "mod.zip") {
		t.Errorf("Zip record = %+v", res.Mods[0])
	}
	if res.Mods[1].SourcePath != filepath.Join(base, "local") {
		t.Errorf("Dir SourcePath = %q", res.Mods[1].SourcePath)
	}
}

func TestParseModDescriptor(t *testing.T) {
	t.Parallel()

	text := "version=\"1.4.2\"\r\n" +
		"tags={\r\n\t\"Alternative History\"\r\n\t\"Say \\\"hi\\\"\"\r\n}\r\n" +
		"name = \"Cool Mod\" # trailing comment\r\n" +
		"supported_version=\"1.12.*\"\r\n" +
		"name=\"Shadowed\"\r\n"

	d := ParseModDescriptor(text)
	if d.Name != "Cool Mod" {
		t.Errorf("Name = %q", d.Name)
	}
	if d.Version != "1.4.2" || d.SupportedVersion != "1.12.*" {
		t.Errorf("versions = %q / %q", d.Version, d.SupportedVersion)
	}
	if want := []string{"Alternative History", `Say "hi"`}; !slices.Equal(d.Tags, want) {
		t.Errorf("Tags = %q, want %q", d.Tags, want)
	}

	if d := ParseModDescriptor("tags={ \"A\" \"B\" }"); !slices.Equal(d.Tags, []string{"A", "B"}) {
		t.Errorf("single line tags = %v", d.Tags)
	}
	if d := ParseModDescriptor("garbage\n= nothing"); d.Name != "" || d.Tags != nil {
		t.Errorf("garbage parsed as %+v", d)
	}
}

func names(mods []ModRecord) []string {
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		out = append(out, m.DisplayName)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
