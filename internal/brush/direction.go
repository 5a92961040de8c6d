package brush

// Direction identifies one slot of an AutoBorder and, for carpets, the
// alignment a carpet piece is drawn with.
type Direction uint8

const (
	DirNone Direction = iota
	North
	East
	South
	West
	NorthWestCorner
	NorthEastCorner
	SouthWestCorner
	SouthEastCorner
	NorthWestDiagonal
	NorthEastDiagonal
	SouthEastDiagonal
	SouthWestDiagonal
	Center
)

// BorderSlots is the number of AutoBorder slots (DirNone..SouthWestDiagonal).
const BorderSlots = 13

// CarpetSlots is the number of carpet alignments (every Direction incl. Center).
const CarpetSlots = 14

var directionNames = [...]string{
	"none", "n", "e", "s", "w",
	"nw_corner", "ne_corner", "sw_corner", "se_corner",
	"nw_diagonal", "ne_diagonal", "se_diagonal", "sw_diagonal",
	"center",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "invalid"
}

// IsDiagonal reports whether d is one of the four diagonal slots.
func (d Direction) IsDiagonal() bool {
	return d >= NorthWestDiagonal && d <= SouthWestDiagonal
}

// WallAlignment is the shape of a wall piece. The first 16 values equal
// the 4-bit neighbour mask (N=1, W=2, E=4, S=8) that produces them.
type WallAlignment uint8

const (
	WallPole WallAlignment = iota
	WallSouthEnd
	WallEastEnd
	WallNorthWestDiagonal
	WallWestEnd
	WallNorthEastDiagonal
	WallHorizontal
	WallSouthT
	WallNorthEnd
	WallVertical
	WallSouthWestDiagonal
	WallEastT
	WallSouthEastDiagonal
	WallWestT
	WallNorthT
	WallIntersection
	WallUntouchable
)

// WallSlots is the number of wall alignments including WallUntouchable.
const WallSlots = 17

var wallNames = [...]string{
	"pole", "south_end", "east_end", "nw_diagonal", "west_end",
	"ne_diagonal", "horizontal", "south_t", "north_end", "vertical",
	"sw_diagonal", "east_t", "se_diagonal", "west_t", "north_t",
	"intersection", "untouchable",
}

func (a WallAlignment) String() string {
	if int(a) < len(wallNames) {
		return wallNames[a]
	}
	return "invalid"
}

// TableAlignment is the shape of a table piece.
type TableAlignment uint8

const (
	TableAlone TableAlignment = iota
	TableVertical
	TableHorizontal
	TableSouthEnd
	TableEastEnd
	TableNorthEnd
	TableWestEnd
)

// TableSlots is the number of table alignments.
const TableSlots = 7

var tableNames = [...]string{
	"alone", "vertical", "horizontal", "south_end", "east_end", "north_end", "west_end",
}

func (a TableAlignment) String() string {
	if int(a) < len(tableNames) {
		return tableNames[a]
	}
	return "invalid"
}
