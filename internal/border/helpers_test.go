package border

import (
	"math/rand"
	"testing"

	"autoborder/internal/brush"
	"autoborder/internal/maps"
	"autoborder/internal/tables"
)

// Ground fill items used by the fixtures.
const (
	grassItem    brush.ItemID = 100
	sandItem     brush.ItemID = 110
	waterItem    brush.ItemID = 120
	dirtItem     brush.ItemID = 130
	mountainItem brush.ItemID = 140
)

// borderSet returns an AutoBorder whose slot for direction d is base+d,
// for every direction in dirs.
func borderSet(id brush.AutoBorderID, name string, group uint16, base brush.ItemID, dirs ...brush.Direction) *brush.AutoBorder {
	ab := &brush.AutoBorder{ID: id, Name: name, Group: group}
	for _, d := range dirs {
		ab.Tiles[d] = base + brush.ItemID(d)
	}
	return ab
}

var allDirections = []brush.Direction{
	brush.North, brush.East, brush.South, brush.West,
	brush.NorthWestCorner, brush.NorthEastCorner, brush.SouthWestCorner, brush.SouthEastCorner,
	brush.NorthWestDiagonal, brush.NorthEastDiagonal, brush.SouthEastDiagonal, brush.SouthWestDiagonal,
}

// mustRegistry registers every brush and AutoBorder in defs.
func mustRegistry(t *testing.T, defs ...any) *brush.Registry {
	t.Helper()
	reg := brush.NewRegistry()
	for _, d := range defs {
		var err error
		switch v := d.(type) {
		case *brush.AutoBorder:
			err = reg.AddAutoBorder(v)
		case *brush.GroundBrush:
			err = reg.AddGround(v)
		case *brush.WallBrush:
			err = reg.AddWall(v)
		case *brush.CarpetBrush:
			err = reg.AddCarpet(v)
		case *brush.TableBrush:
			err = reg.AddTable(v)
		default:
			t.Fatalf("unsupported fixture %T", d)
		}
		if err != nil {
			t.Fatalf("register %T: %v", d, err)
		}
	}
	if err := reg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return reg
}

func newTestEngine(reg *brush.Registry) *Engine {
	return NewEngine(reg, tables.New(), rand.New(rand.NewSource(1)), nil)
}

// buildTestMap creates a single-floor map from rows of legend characters.
// Each character paints the mapped ground item; '.' leaves the cell empty.
func buildTestMap(rows []string, legend map[byte]brush.ItemID) *maps.Map {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	m := maps.New("test", w, h, 1)
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '.' {
				continue
			}
			tile := m.GetOrCreate(x, y, 0)
			if id, ok := legend[row[x]]; ok && id != 0 {
				tile.SetGround(maps.Item{ID: id})
			}
		}
	}
	return m
}

// borderAll runs fn over every tile of m.
func borderAll(m *maps.Map, fn func(Map, *maps.Tile)) {
	m.Each(func(t *maps.Tile) { fn(m, t) })
}

func idsEqual(a, b []brush.ItemID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// snapshot captures every tile's item ids in map order.
func snapshot(m *maps.Map) [][]brush.ItemID {
	var out [][]brush.ItemID
	m.Each(func(t *maps.Tile) { out = append(out, t.ItemIDs()) })
	return out
}
