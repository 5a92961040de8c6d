package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"autoborder/internal/catalog"
	"autoborder/internal/editor"
	"autoborder/internal/render"
)

const statusRows = 2

func cellStyle(c render.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.FG[0]), int32(c.FG[1]), int32(c.FG[2]))).
		Background(tcell.NewRGBColor(int32(c.BG[0]), int32(c.BG[1]), int32(c.BG[2]))).
		Bold(c.Bold)
}

// draw paints st onto s from the point of view of session viewerID: the
// map around its cursor and two status lines below.
func draw(s tcell.Screen, cat *catalog.Catalog, st editor.State, viewerID string) {
	s.Clear()
	w, h := s.Size()
	if st.Map == nil {
		return
	}
	var viewer editor.SessionSnapshot
	for _, ss := range st.Sessions {
		if ss.ID == viewerID {
			viewer = ss
			break
		}
	}
	m := st.Map
	vp := render.NewViewport(viewer.X, viewer.Y, w, h, m.Width, m.Height, statusRows)

	for ty := 0; ty < vp.ViewH; ty++ {
		wy := vp.CamY + ty
		if wy >= m.Height {
			break
		}
		for tx := 0; tx < vp.ViewW; tx++ {
			wx := vp.CamX + tx
			if wx >= m.Width {
				break
			}
			cells := render.TileCells(cat, m.Tile(wx, wy, 0))
			for i, c := range cells {
				ch := c.Ch
				if ch == 0 {
					ch = ' '
				}
				style := cellStyle(c)
				if wx == viewer.X && wy == viewer.Y {
					style = style.Reverse(true)
				}
				s.SetContent(tx*render.TileWidth+i, ty, ch, nil, style)
			}
		}
	}

	status := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(15, 18, 30))
	row := vp.ViewH
	line := fmt.Sprintf(" %s | %s", viewer.Describe(), render.DescribeTile(cat, m.Tile(viewer.X, viewer.Y, 0)))
	writeLine(s, row, w, line, status)

	var palette string
	for _, e := range cat.Palette {
		palette += fmt.Sprintf(" %c %s ", e.Key, e.Name)
	}
	writeLine(s, row+1, w, palette+" | space paint  x erase  o optional  r refresh  q quit", status.Dim(true))
}

func writeLine(s tcell.Screen, row, width int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= width {
			return
		}
		s.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.SetContent(col, row, ' ', nil, style)
	}
}

// keyAction maps a key press to an edit action. Palette digits come back
// as ActionSelect with the digit as key.
func keyAction(key tcell.Key, r rune) (editor.Action, rune) {
	switch key {
	case tcell.KeyUp:
		return editor.ActionUp, 0
	case tcell.KeyDown:
		return editor.ActionDown, 0
	case tcell.KeyLeft:
		return editor.ActionLeft, 0
	case tcell.KeyRight:
		return editor.ActionRight, 0
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return editor.ActionQuit, 0
	case tcell.KeyRune:
	default:
		return editor.ActionNone, 0
	}

	switch r {
	case 'w', 'W':
		return editor.ActionUp, 0
	case 's', 'S':
		return editor.ActionDown, 0
	case 'a', 'A':
		return editor.ActionLeft, 0
	case 'd', 'D':
		return editor.ActionRight, 0
	case ' ':
		return editor.ActionPaint, 0
	case 'x', 'X':
		return editor.ActionErase, 0
	case 'o', 'O':
		return editor.ActionToggleOptional, 0
	case 'r', 'R':
		return editor.ActionRefresh, 0
	case 'q', 'Q':
		return editor.ActionQuit, 0
	}
	if r >= '0' && r <= '9' {
		return editor.ActionSelect, r
	}
	return editor.ActionNone, 0
}
