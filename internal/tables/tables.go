// Package tables holds the neighbour-mask lookup tables used by the border
// calculators. Tables are computed once by New and never mutated.
package tables

import "autoborder/internal/brush"

// 8-bit neighbour mask, one bit per compass offset in sampling order.
const (
	TileNorthWest uint8 = 1 << iota
	TileNorth
	TileNorthEast
	TileWest
	TileEast
	TileSouthWest
	TileSouth
	TileSouthEast
)

// 4-bit wall neighbour mask.
const (
	WallNorth uint8 = 1 << iota
	WallWest
	WallEast
	WallSouth
)

// Tables is the read-only lookup data shared by all calculators.
type Tables struct {
	// Ground packs up to four Directions per mask, lowest byte first;
	// a zero byte terminates the list.
	Ground [256]uint32
	Carpet [256]brush.Direction
	Table  [256]brush.TableAlignment

	WallFull [16]brush.WallAlignment
	WallHalf [16]brush.WallAlignment
}

// Option adjusts a Tables value while New builds it.
type Option func(*Tables)

// WithWallTables replaces both wall tables.
func WithWallTables(full, half [16]brush.WallAlignment) Option {
	return func(t *Tables) {
		t.WallFull = full
		t.WallHalf = half
	}
}

// New computes every table for all possible masks.
func New(opts ...Option) *Tables {
	t := &Tables{}
	for mask := 0; mask < 256; mask++ {
		m := uint8(mask)
		t.Ground[m] = pack(groundDirections(m))
		t.Carpet[m] = carpetAlignment(m)
		t.Table[m] = tableAlignment(m)
	}
	for mask := 0; mask < 16; mask++ {
		t.WallFull[mask] = brush.WallAlignment(mask)
		t.WallHalf[mask] = halfWallAlignment(uint8(mask))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GroundDirections decodes the packed entry for mask. The result is
// terminated by the first DirNone.
func (t *Tables) GroundDirections(mask uint8) [4]brush.Direction {
	packed := t.Ground[mask]
	var dirs [4]brush.Direction
	for i := 0; i < 4; i++ {
		dirs[i] = brush.Direction((packed >> (8 * i)) & 0xFF)
	}
	return dirs
}

// WallTarget returns the target alignment for a 4-bit mask from the full
// (pass 0) or half (pass 1) table. Bits above the low four are ignored.
func (t *Tables) WallTarget(pass int, mask uint8) brush.WallAlignment {
	if pass == 0 {
		return t.WallFull[mask&0x0F]
	}
	return t.WallHalf[mask&0x0F]
}

func pack(dirs []brush.Direction) uint32 {
	var packed uint32
	for i, d := range dirs {
		if i == 4 {
			break
		}
		packed |= uint32(d) << (8 * i)
	}
	return packed
}

// groundDirections returns the border slots needed on a tile whose
// neighbours in mask belong to the other brush. Two adjacent cardinals
// collapse into a diagonal; a corner is only used when neither adjacent
// cardinal is set.
func groundDirections(mask uint8) []brush.Direction {
	n := mask&TileNorth != 0
	e := mask&TileEast != 0
	s := mask&TileSouth != 0
	w := mask&TileWest != 0
	nw := mask&TileNorthWest != 0
	ne := mask&TileNorthEast != 0
	sw := mask&TileSouthWest != 0
	se := mask&TileSouthEast != 0

	var dirs []brush.Direction

	// Edges
	if n && !w && !e {
		dirs = append(dirs, brush.North)
	}
	if e && !n && !s {
		dirs = append(dirs, brush.East)
	}
	if s && !w && !e {
		dirs = append(dirs, brush.South)
	}
	if w && !n && !s {
		dirs = append(dirs, brush.West)
	}

	// Diagonals
	if n && w {
		dirs = append(dirs, brush.NorthWestDiagonal)
	}
	if n && e {
		dirs = append(dirs, brush.NorthEastDiagonal)
	}
	if s && e {
		dirs = append(dirs, brush.SouthEastDiagonal)
	}
	if s && w {
		dirs = append(dirs, brush.SouthWestDiagonal)
	}

	// Corners
	if nw && !n && !w {
		dirs = append(dirs, brush.NorthWestCorner)
	}
	if ne && !n && !e {
		dirs = append(dirs, brush.NorthEastCorner)
	}
	if sw && !s && !w {
		dirs = append(dirs, brush.SouthWestCorner)
	}
	if se && !s && !e {
		dirs = append(dirs, brush.SouthEastCorner)
	}

	return dirs
}

// carpetAlignment picks the carpet piece for a tile whose same-brush
// neighbours are set in mask.
func carpetAlignment(mask uint8) brush.Direction {
	n := mask&TileNorth != 0
	e := mask&TileEast != 0
	s := mask&TileSouth != 0
	w := mask&TileWest != 0

	missing := 0
	for _, present := range []bool{n, e, s, w} {
		if !present {
			missing++
		}
	}

	switch missing {
	case 0:
		// All cardinals present, a single missing diagonal is an inner corner.
		var corners []brush.Direction
		if mask&TileNorthWest == 0 {
			corners = append(corners, brush.NorthWestCorner)
		}
		if mask&TileNorthEast == 0 {
			corners = append(corners, brush.NorthEastCorner)
		}
		if mask&TileSouthWest == 0 {
			corners = append(corners, brush.SouthWestCorner)
		}
		if mask&TileSouthEast == 0 {
			corners = append(corners, brush.SouthEastCorner)
		}
		if len(corners) == 1 {
			return corners[0]
		}
		return brush.Center
	case 1:
		switch {
		case !n:
			return brush.North
		case !e:
			return brush.East
		case !s:
			return brush.South
		default:
			return brush.West
		}
	case 2:
		switch {
		case !n && !w:
			return brush.NorthWestDiagonal
		case !n && !e:
			return brush.NorthEastDiagonal
		case !s && !e:
			return brush.SouthEastDiagonal
		case !s && !w:
			return brush.SouthWestDiagonal
		}
	}
	// Peninsulas, isolated pieces and opposite gaps.
	return brush.Center
}

// tableAlignment only looks at cardinals; horizontal runs win over vertical.
func tableAlignment(mask uint8) brush.TableAlignment {
	n := mask&TileNorth != 0
	e := mask&TileEast != 0
	s := mask&TileSouth != 0
	w := mask&TileWest != 0

	switch {
	case w && e:
		return brush.TableHorizontal
	case w:
		return brush.TableEastEnd
	case e:
		return brush.TableWestEnd
	case n && s:
		return brush.TableVertical
	case n:
		return brush.TableSouthEnd
	case s:
		return brush.TableNorthEnd
	}
	return brush.TableAlone
}

// halfWallAlignment only honours the north and west neighbours.
func halfWallAlignment(mask uint8) brush.WallAlignment {
	n := mask&WallNorth != 0
	w := mask&WallWest != 0
	switch {
	case n && w:
		return brush.WallNorthWestDiagonal
	case n:
		return brush.WallVertical
	case w:
		return brush.WallHorizontal
	}
	return brush.WallPole
}
