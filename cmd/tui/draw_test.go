package main

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"autoborder/internal/border"
	"autoborder/internal/catalog"
	"autoborder/internal/editor"
	"autoborder/internal/maps"
)

func wallState(t *testing.T, cat *catalog.Catalog) editor.State {
	t.Helper()
	l := &maps.Layout{
		Name: "Fence", Width: 3, Height: 1,
		Tiles:  [][]int{{0, 0, 0}},
		Legend: []maps.Layer{{Ground: "grass", Wall: "stone wall"}},
	}
	eng := border.NewEngine(cat.Registry, nil, rand.New(rand.NewSource(1)), nil)
	doc, err := editor.Build(l, eng, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	return editor.State{
		Map: doc.Map(),
		Sessions: []editor.SessionSnapshot{
			{ID: "me", Name: "tester", X: 1, Y: 0, Brush: cat.Palette[0]},
		},
	}
}

func rowText(s tcell.Screen, row, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, row)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestDraw(t *testing.T) {
	cat := catalog.MustDefault()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(60, 6)

	draw(screen, cat, wallState(t, cat), "me")

	if got := rowText(screen, 0, 6); got != "╺━━━╸ " {
		t.Errorf("expected the fence on row 0, got %q", got)
	}

	_, _, style, _ := screen.GetContent(2, 0)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("expected the cursor tile to be reversed")
	}
	_, _, style, _ = screen.GetContent(0, 0)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse != 0 {
		t.Error("expected tiles away from the cursor to be plain")
	}

	status := rowText(screen, 4, 60)
	if !strings.Contains(status, "tester (1,0)") || !strings.Contains(status, "stone wall") {
		t.Errorf("unexpected status line %q", status)
	}
}

func TestDrawWithoutMap(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(10, 4)

	draw(screen, catalog.MustDefault(), editor.State{}, "me")

	if got := strings.TrimSpace(rowText(screen, 0, 10)); got != "" {
		t.Errorf("expected a blank screen, got %q", got)
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name   string
		key    tcell.Key
		r      rune
		action editor.Action
		sel    rune
	}{
		{"arrow up", tcell.KeyUp, 0, editor.ActionUp, 0},
		{"arrow left", tcell.KeyLeft, 0, editor.ActionLeft, 0},
		{"wasd", tcell.KeyRune, 'd', editor.ActionRight, 0},
		{"paint", tcell.KeyRune, ' ', editor.ActionPaint, 0},
		{"erase", tcell.KeyRune, 'x', editor.ActionErase, 0},
		{"optional", tcell.KeyRune, 'o', editor.ActionToggleOptional, 0},
		{"refresh", tcell.KeyRune, 'R', editor.ActionRefresh, 0},
		{"palette", tcell.KeyRune, '7', editor.ActionSelect, '7'},
		{"torch", tcell.KeyRune, '0', editor.ActionSelect, '0'},
		{"quit", tcell.KeyRune, 'q', editor.ActionQuit, 0},
		{"escape", tcell.KeyEscape, 0, editor.ActionQuit, 0},
		{"ctrl-c", tcell.KeyCtrlC, 0, editor.ActionQuit, 0},
		{"unbound", tcell.KeyRune, 'z', editor.ActionNone, 0},
		{"tab", tcell.KeyTab, 0, editor.ActionNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, sel := keyAction(tt.key, tt.r)
			if action != tt.action || sel != tt.sel {
				t.Errorf("keyAction(%v, %q) = %v, %q; expected %v, %q", tt.key, tt.r, action, sel, tt.action, tt.sel)
			}
		})
	}
}

func TestCursorMoved(t *testing.T) {
	a := editor.State{Sessions: []editor.SessionSnapshot{{ID: "me", X: 1}}}
	b := editor.State{Sessions: []editor.SessionSnapshot{{ID: "me", X: 2}}}
	if !cursorMoved(a, b, "me") {
		t.Error("expected a move")
	}
	if cursorMoved(a, a, "me") {
		t.Error("expected no move")
	}
	if !cursorMoved(editor.State{}, a, "me") {
		t.Error("expected a join to count as a move")
	}
}
