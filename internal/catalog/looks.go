package catalog

import "autoborder/internal/brush"

// RGB is a 24-bit terminal color.
type RGB [3]uint8

// Appearance is how one item is drawn in a two column terminal cell.
// Glyph fills the left column and Fill the right one; a zero BG keeps
// whatever is underneath.
type Appearance struct {
	Glyph rune
	Fill  rune
	FG    RGB
	BG    RGB
	Name  string
}

var (
	groundColors = map[brush.BrushID]RGB{
		Grass:    {58, 120, 52},
		Sand:     {194, 170, 110},
		Water:    {40, 80, 160},
		Dirt:     {110, 78, 48},
		Mountain: {96, 92, 88},
	}
	groundGlyphs = map[brush.BrushID]rune{
		Grass:    '"',
		Sand:     '.',
		Water:    '~',
		Dirt:     ',',
		Mountain: '^',
	}
	// Border colors are keyed by the AutoBorder group.
	borderColors = map[uint16]RGB{
		uint16(SandBorder):   {222, 198, 130},
		uint16(ShoreBorder):  {120, 170, 220},
		uint16(VoidEdge):     {20, 20, 24},
		uint16(DirtBorder):   {140, 100, 62},
		uint16(MountainFoot): {150, 146, 140},
		uint16(RockBorder):   {120, 116, 110},
	}
	wallColors = map[brush.BrushID]RGB{
		StoneWall:     {200, 200, 205},
		FrameworkWall: {170, 130, 80},
		Torch:         {255, 190, 60},
	}
)

// Border glyphs cover the side of the cell the neighbour brush is on.
var borderGlyphs = [brush.BorderSlots]rune{
	brush.DirNone:           '≡',
	brush.North:             '▀',
	brush.East:              '▐',
	brush.South:             '▄',
	brush.West:              '▌',
	brush.NorthWestCorner:   '▘',
	brush.NorthEastCorner:   '▝',
	brush.SouthWestCorner:   '▖',
	brush.SouthEastCorner:   '▗',
	brush.NorthWestDiagonal: '▛',
	brush.NorthEastDiagonal: '▜',
	brush.SouthEastDiagonal: '▟',
	brush.SouthWestDiagonal: '▙',
}

// Wall glyphs are indexed by alignment, which is the N/W/E/S mask.
var heavyWallGlyphs = [brush.WallSlots]rune{
	'▪', '╹', '╸', '┛', '╺', '┗', '━', '┻',
	'╻', '┃', '┓', '┫', '┏', '┣', '┳', '╋',
	'▓',
}

// wallEast is the east bit of a wall alignment.
const wallEast = 4

var lightWallGlyphs = [brush.WallSlots]rune{
	'•', '╵', '╴', '┘', '╶', '└', '─', '┴',
	'╷', '│', '┐', '┤', '┌', '├', '┬', '┼',
	'▒',
}

var tableGlyphs = [brush.TableSlots]rune{
	brush.TableAlone:      '□',
	brush.TableVertical:   '║',
	brush.TableHorizontal: '═',
	brush.TableSouthEnd:   '╨',
	brush.TableEastEnd:    '╡',
	brush.TableNorthEnd:   '╥',
	brush.TableWestEnd:    '╞',
}

var (
	carpetColor = RGB{170, 30, 40}
	tableColor  = RGB{150, 100, 50}
	doorColor   = RGB{160, 110, 60}
	unknownLook = Appearance{Glyph: '?', Fill: '?', FG: RGB{255, 0, 255}, Name: "unknown"}
)

func (c *Catalog) buildLooks() {
	c.looks = make(map[brush.ItemID]Appearance)
	c.Registry.EachItem(func(t brush.ItemType) {
		c.looks[t.ID] = c.lookFor(t)
	})
	for _, d := range []brush.ItemID{stoneDoors, stoneDoors + 1} {
		c.looks[d] = Appearance{Glyph: '+', Fill: ' ', FG: doorColor, Name: "door"}
	}
	for _, d := range []brush.ItemID{stoneDoors + 2, stoneDoors + 3} {
		c.looks[d] = Appearance{Glyph: '∩', Fill: ' ', FG: doorColor, Name: "archway"}
	}
}

func (c *Catalog) lookFor(t brush.ItemType) Appearance {
	switch t.Kind {
	case brush.KindGround:
		col := groundColors[t.Brush]
		return Appearance{Glyph: groundGlyphs[t.Brush], Fill: ' ', FG: shade(col, 30), BG: col, Name: t.Name}
	case brush.KindBorder:
		glyph := '≡'
		if int(t.Alignment) < len(borderGlyphs) {
			glyph = borderGlyphs[t.Alignment]
		}
		col, ok := borderColors[t.BorderGroup]
		if !ok {
			col = borderColors[uint16(SandBorder)]
		}
		return Appearance{Glyph: glyph, Fill: glyph, FG: col, Name: t.Name}
	case brush.KindWall:
		glyphs := &heavyWallGlyphs
		if t.Brush == FrameworkWall {
			glyphs = &lightWallGlyphs
		}
		glyph := '?'
		if int(t.Alignment) < len(glyphs) {
			glyph = glyphs[t.Alignment]
		}
		// The right column continues the wall eastwards.
		fill := ' '
		if t.Alignment < uint8(brush.WallUntouchable) && t.Alignment&wallEast != 0 {
			fill = glyphs[brush.WallHorizontal]
		}
		if t.Alignment == uint8(brush.WallUntouchable) {
			fill = glyph
		}
		if t.Brush == Torch {
			glyph, fill = '¡', ' '
		}
		return Appearance{Glyph: glyph, Fill: fill, FG: wallColors[t.Brush], Name: t.Name}
	case brush.KindCarpet:
		glyph := '░'
		if brush.Direction(t.Alignment) == brush.Center {
			glyph = '▒'
		}
		return Appearance{Glyph: glyph, Fill: glyph, FG: carpetColor, Name: t.Name}
	case brush.KindTable:
		glyph := '□'
		if int(t.Alignment) < len(tableGlyphs) {
			glyph = tableGlyphs[t.Alignment]
		}
		fill := ' '
		if a := brush.TableAlignment(t.Alignment); a == brush.TableHorizontal || a == brush.TableWestEnd {
			fill = tableGlyphs[brush.TableHorizontal]
		}
		return Appearance{Glyph: glyph, Fill: fill, FG: tableColor, Name: t.Name}
	}
	return unknownLook
}

// Look returns the appearance of item id.
func (c *Catalog) Look(id brush.ItemID) Appearance {
	if a, ok := c.looks[id]; ok {
		return a
	}
	return unknownLook
}

// GroundColor returns the background color of a ground brush.
func GroundColor(id brush.BrushID) RGB {
	return groundColors[id]
}

func shade(c RGB, d int) RGB {
	var out RGB
	for i, v := range c {
		n := int(v) + d
		if n > 255 {
			n = 255
		}
		out[i] = uint8(n)
	}
	return out
}
