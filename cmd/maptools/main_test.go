package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autoborder/internal/catalog"
	"autoborder/internal/maps"
)

func writeLayout(t *testing.T, dir, file string, l *maps.Layout) string {
	t.Helper()
	data, err := l.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateLayout(t *testing.T) {
	cat := catalog.MustDefault()
	tests := []struct {
		name  string
		layer maps.Layer
		want  string
	}{
		{"ok", maps.Layer{Ground: "grass", Wall: "stone wall"}, ""},
		{"unknown", maps.Layer{Ground: "lava"}, `ground "lava"`},
		{"wrong layer", maps.Layer{Ground: "stone wall"}, "is not a ground brush"},
		{"carpet as table", maps.Layer{Ground: "dirt", Table: "red carpet"}, "is not a table brush"},
		{"optional", maps.Layer{Optional: true}, "optional border without ground"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := validateLayout(cat, &maps.Layout{Legend: []maps.Layer{tt.layer}})
			if tt.want == "" {
				if len(problems) != 0 {
					t.Errorf("expected no problems, got %v", problems)
				}
				return
			}
			if len(problems) != 1 || !strings.Contains(problems[0], tt.want) {
				t.Errorf("expected one problem containing %q, got %v", tt.want, problems)
			}
		})
	}
}

func TestRunCommands(t *testing.T) {
	cat := catalog.MustDefault()
	dir := t.TempDir()
	path := writeLayout(t, dir, "default.json", maps.DefaultLayout())

	var out bytes.Buffer
	if code := runValidate(&out, cat, dir); code != 0 {
		t.Fatalf("validate exit %d:\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "All 1 layouts valid") {
		t.Errorf("unexpected validate output:\n%s", out.String())
	}

	out.Reset()
	if err := runStats(&out, cat, path); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Layers:", "grass+stone wall", "Items:", "border", "Bordered tiles:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stats output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := runBorders(&out, cat, path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "(7,4) grass") {
		t.Errorf("expected the grass beside the beach to be bordered:\n%s", out.String())
	}

	out.Reset()
	if err := runViz(&out, cat, path); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 21 {
		t.Errorf("expected header plus 20 rows, got %d lines", lines)
	}
}

func TestRunValidateReportsErrors(t *testing.T) {
	cat := catalog.MustDefault()
	dir := t.TempDir()
	writeLayout(t, dir, "bad.json", &maps.Layout{
		Name: "Bad", Width: 1, Height: 1,
		Tiles:  [][]int{{0}},
		Legend: []maps.Layer{{Ground: "lava"}},
	})

	var out bytes.Buffer
	if code := runValidate(&out, cat, dir); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out.String(), "1 error(s) found") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
