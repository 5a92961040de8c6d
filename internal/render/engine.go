package render

import (
	"fmt"
	"strings"

	"autoborder/internal/catalog"
	"autoborder/internal/maps"
)

const HUDRows = 4

// RGB is a 24-bit terminal color.
type RGB = catalog.RGB

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch   rune
	FG   RGB
	BG   RGB
	Bold bool
}

var (
	sentinel = Cell{Ch: '\x00', FG: RGB{255, 0, 0}, BG: RGB{0, 0, 255}, Bold: true}
	voidCell = Cell{Ch: ' ', BG: RGB{10, 10, 15}}
	hudBG    = RGB{15, 18, 30}
)

// CursorInfo is the minimal session data the renderer needs.
type CursorInfo struct {
	ID    string
	Name  string
	X, Y  int
	Color int // index into CursorBGColors
	Brush rune
}

// TileCells composes the screen cells of t: the ground first, then every
// item bottom-up. A blank rune in an item's look leaves the cell below
// visible.
func TileCells(cat *catalog.Catalog, t *maps.Tile) [TileWidth]Cell {
	out := [TileWidth]Cell{voidCell, voidCell}
	if t == nil {
		return out
	}
	if g, ok := t.Ground(); ok {
		a := cat.Look(g.ID)
		out[0] = Cell{Ch: a.Glyph, FG: a.FG, BG: a.BG}
		out[1] = Cell{Ch: a.Fill, FG: a.FG, BG: a.BG}
	}
	for _, it := range t.Items() {
		a := cat.Look(it.ID)
		for i, ch := range [TileWidth]rune{a.Glyph, a.Fill} {
			if ch == 0 || ch == ' ' {
				continue
			}
			out[i].Ch = ch
			out[i].FG = a.FG
			if a.BG != (RGB{}) {
				out[i].BG = a.BG
			}
		}
	}
	return out
}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	cat           *catalog.Catalog
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(cat *catalog.Catalog, width, height int) *Engine {
	e := &Engine{cat: cat}
	e.Resize(width, height)
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render produces the ANSI byte output for the current frame.
func (e *Engine) Render(viewerID string, tileMap *maps.Map, cursors []CursorInfo, termW, termH int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}

	var viewer CursorInfo
	for _, c := range cursors {
		if c.ID == viewerID {
			viewer = c
			break
		}
	}

	vp := NewViewport(viewer.X, viewer.Y, termW, termH, tileMap.Width, tileMap.Height, HUDRows)

	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = voidCell
		}
	}

	for ty := 0; ty < vp.ViewH; ty++ {
		for tx := 0; tx < vp.ViewW; tx++ {
			wx, wy := vp.CamX+tx, vp.CamY+ty
			if !tileMap.InBounds(wx, wy, 0) {
				continue
			}
			e.stampTile(tx*TileWidth, ty, TileCells(e.cat, tileMap.Tile(wx, wy, 0)))
		}
	}

	// Cursors tint the tile they sit on; the viewer's own is bold.
	for _, c := range cursors {
		sx, sy := vp.WorldToScreen(c.X, c.Y)
		if sx < 0 {
			continue
		}
		tint := CursorBGColors[c.Color%len(CursorBGColors)]
		cells := TileCells(e.cat, tileMap.Tile(c.X, c.Y, 0))
		for i := range cells {
			cells[i].BG = tint
			cells[i].FG = RGB{255, 255, 255}
			cells[i].Bold = c.ID == viewerID
			if cells[i].Ch == ' ' && c.ID == viewerID {
				cells[i].Ch = []rune("[]")[i]
			}
		}
		e.stampTile(sx, sy, cells)
	}

	e.drawHUD(viewer, len(cursors), tileMap)

	return e.flush()
}

func (e *Engine) stampTile(sx, sy int, cells [TileWidth]Cell) {
	if sy < 0 || sy >= e.height {
		return
	}
	for i, c := range cells {
		if x := sx + i; x >= 0 && x < e.width {
			e.next[sy][x] = c
		}
	}
}

// flush diffs current vs next, emits only changed cells and swaps the
// buffers.
func (e *Engine) flush() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

// --- HUD ---

func (e *Engine) drawHUD(viewer CursorInfo, sessions int, tileMap *maps.Map) {
	hudY := e.height - HUDRows
	if hudY < 0 {
		return
	}

	// Row 0: separator, a thin gradient line
	for x := 0; x < e.width; x++ {
		t := uint8(60 - x*40/max(e.width, 1))
		e.next[hudY][x] = Cell{Ch: '━', FG: RGB{40 + t, 70 + t, 90 + t}, BG: hudBG}
	}
	for row := 1; row < HUDRows; row++ {
		y := hudY + row
		if y >= e.height {
			break
		}
		for x := 0; x < e.width; x++ {
			e.next[y][x] = Cell{Ch: ' ', BG: hudBG}
		}
	}

	tint := CursorBGColors[viewer.Color%len(CursorBGColors)]
	for i := range tint {
		tint[i] += (255 - tint[i]) / 3
	}
	sep := RGB{60, 65, 85}
	text := RGB{180, 180, 195}

	// Row 1: who, where, what is under the cursor
	row1 := hudY + 1
	col := e.writeText(row1, 1, e.width, viewer.Name, tint, true)
	col = e.writeText(row1, col, e.width, "  │  ", sep, false)
	col = e.writeText(row1, col, e.width, tileMap.Name, text, false)
	col = e.writeText(row1, col, e.width, "  │  ", sep, false)
	col = e.writeText(row1, col, e.width, fmt.Sprintf("%d Online", sessions), text, false)
	col = e.writeText(row1, col, e.width, "  │  ", sep, false)
	col = e.writeText(row1, col, e.width, fmt.Sprintf("(%d,%d) ", viewer.X, viewer.Y), text, false)
	e.writeText(row1, col, e.width, DescribeTile(e.cat, tileMap.Tile(viewer.X, viewer.Y, 0)), RGB{150, 200, 150}, false)

	// Row 2: palette, the selected brush highlighted
	row2 := hudY + 2
	col = 1
	for _, p := range e.cat.Palette {
		label := fmt.Sprintf(" %c %s ", p.Key, p.Name)
		if p.Key == viewer.Brush {
			col = e.writeTextBG(row2, col, e.width, label, RGB{255, 255, 255}, tint, true)
		} else {
			col = e.writeText(row2, col, e.width, label, RGB{130, 130, 145}, false)
		}
	}

	// Row 3: controls
	e.writeText(hudY+3, 1, e.width, "←↑↓→/WASD Move  │  0-9 Brush  │  Space Paint  │  X Erase  │  O Optional  │  R Refresh  │  Q Quit", RGB{130, 130, 145}, false)
}

// DescribeTile lists the names of everything on t, ground first.
func DescribeTile(cat *catalog.Catalog, t *maps.Tile) string {
	if t == nil {
		return "void"
	}
	var names []string
	if g, ok := t.Ground(); ok {
		names = append(names, cat.Look(g.ID).Name)
	}
	for _, it := range t.Items() {
		names = append(names, cat.Look(it.ID).Name)
	}
	s := strings.Join(names, ", ")
	if t.HasOptionalBorder() {
		s += " (optional)"
	}
	if s == "" {
		return "empty"
	}
	return s
}

// writeText writes colored text into a bounded region [col, maxCol). Returns the next column position.
func (e *Engine) writeText(row, col, maxCol int, text string, fg RGB, bold bool) int {
	return e.writeTextBG(row, col, maxCol, text, fg, hudBG, bold)
}

func (e *Engine) writeTextBG(row, col, maxCol int, text string, fg, bg RGB, bold bool) int {
	for _, r := range text {
		if col >= maxCol || col >= e.width {
			break
		}
		if row >= 0 && row < e.height && col >= 0 {
			e.next[row][col] = Cell{Ch: r, FG: fg, BG: bg, Bold: bold}
		}
		col++
	}
	return col
}
