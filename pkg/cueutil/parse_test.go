// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const testSchema = `
#Entry: {
	name:     string & !=""
	enabled:  bool | *true
	position?: int & >=0
}
#List: {
	title: string
	items: [...#Entry]
}
`

type testEntry struct {
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	Position int    `json:"position,omitempty"`
}

type testList struct {
	Title string      `json:"title"`
	Items []testEntry `json:"items"`
}

func TestParseAndDecodeJSON(t *testing.T) {
	t.Parallel()

	data := []byte(`{"title": "x", "items": [{"name": "a"}, {"name": "b", "enabled": false, "position": 2}]}`)
	res, err := ParseAndDecode[testList]([]byte(testSchema), data, "#List", WithFilename("list.json"))
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	if len(res.Value.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(res.Value.Items))
	}
	if !res.Value.Items[0].Enabled {
		t.Error("schema default enabled=true was not applied")
	}
	if res.Value.Items[1].Enabled || res.Value.Items[1].Position != 2 {
		t.Errorf("second item = %+v", res.Value.Items[1])
	}
}

func TestParseAndDecodeReportsPath(t *testing.T) {
	t.Parallel()

	data := []byte(`{"title": "x", "items": [{"name": "a"}, {"name": ""}]}`)
	_, err := ParseAndDecode[testList]([]byte(testSchema), data, "#List", WithFilename("list.json"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "list.json") || !strings.Contains(err.Error(), "items[1].name") {
		t.Errorf("error should name file and field path, got: %v", err)
	}
}

func TestParseAndDecodeSizeLimit(t *testing.T) {
	t.Parallel()

	data := []byte(`{"title": "x", "items": []}`)
	_, err := ParseAndDecode[testList]([]byte(testSchema), data, "#List", WithMaxFileSize(4))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("expected size error, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/p/list.cue", []byte("title: \"t\"\nitems: [{name: \"z\"}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := ParseFile[testList](fsys, []byte(testSchema), "/p/list.cue", "#List")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if res.Value.Title != "t" || res.Value.Items[0].Name != "z" {
		t.Errorf("decoded %+v", res.Value)
	}

	if _, err := ParseFile[testList](fsys, []byte(testSchema), "/p/missing.cue", "#List"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "test.cue"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	err := FormatError(errors.New("some error"), "test.cue")
	if err == nil || !strings.Contains(err.Error(), "test.cue") || !strings.Contains(err.Error(), "some error") {
		t.Errorf("non-CUE error should be wrapped with the file path, got %v", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"name"}, "name"},
		{[]string{"ui", "theme"}, "ui.theme"},
		{[]string{"mods", "0", "steamId"}, "mods[0].steamId"},
		{[]string{"mods", "2", "tags", "1"}, "mods[2].tags[1]"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
