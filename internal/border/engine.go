// Package border computes the border, wall, carpet and table items a tile
// needs given the brushes painted around it.
//
// Every calculator reads neighbouring tiles and mutates only the tile it
// is given. Calls are synchronous and never fail: missing neighbours,
// unknown ids and exhausted redirect chains simply emit nothing.
package border

import (
	"io"
	"log"
	"math/rand"
	"time"

	"autoborder/internal/brush"
	"autoborder/internal/maps"
	"autoborder/internal/tables"
)

// Map is the neighbour lookup the calculators need. Tile must return nil
// for absent or out-of-range positions.
type Map interface {
	Tile(x, y, z int) *maps.Tile
}

// Engine bundles the read-only brush arena and lookup tables with the
// random source used for weighted picks.
type Engine struct {
	reg    *brush.Registry
	tables *tables.Tables
	rng    *rand.Rand
	logger *log.Logger
}

// NewEngine creates an engine. A nil rng is seeded from the clock and a
// nil logger discards output.
func NewEngine(reg *brush.Registry, tbl *tables.Tables, rng *rand.Rand, logger *log.Logger) *Engine {
	if tbl == nil {
		tbl = tables.New()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{reg: reg, tables: tbl, rng: rng, logger: logger}
}

// Registry returns the brush arena the engine resolves ids through.
func (e *Engine) Registry() *brush.Registry { return e.reg }

// Borderize runs every calculator on t: ground borders, walls, carpets
// and tables, in that order.
func (e *Engine) Borderize(m Map, t *maps.Tile) {
	if t == nil {
		return
	}
	e.CalculateGroundBorders(m, t)
	e.ResolveWallBorders(m, t)
	e.CalculateCarpet(m, t)
	e.CalculateTable(m, t)
}

// compass lists the 8 neighbour offsets in mask bit order (NW, N, NE, W,
// E, SW, S, SE).
var compass = [8]struct{ dx, dy int }{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// cardinals lists the 4 wall neighbour offsets in wall mask bit order
// (N, W, E, S).
var cardinals = [4]struct{ dx, dy int }{
	{0, -1}, {-1, 0}, {1, 0}, {0, 1},
}

// neighbour returns the tile at pos+offset. Offsets that would go
// negative are skipped instead of being passed to the map.
func neighbour(m Map, pos maps.Position, dx, dy int) *maps.Tile {
	x, y := pos.X+dx, pos.Y+dy
	if x < 0 || y < 0 {
		return nil
	}
	return m.Tile(x, y, pos.Z)
}

func (e *Engine) groundBrush(t *maps.Tile) *brush.GroundBrush {
	if t == nil {
		return nil
	}
	g, ok := t.Ground()
	if !ok {
		return nil
	}
	return e.reg.GroundOf(g.ID)
}

func (e *Engine) isBorder(id brush.ItemID) bool {
	t, ok := e.reg.ItemType(id)
	return ok && t.IsBorder()
}

func (e *Engine) isWall(id brush.ItemID) bool {
	t, ok := e.reg.ItemType(id)
	return ok && t.IsWall()
}

// borderRunLen returns the length of the leading run of border items.
func (e *Engine) borderRunLen(items []maps.Item) int {
	n := 0
	for n < len(items) && e.isBorder(items[n].ID) {
		n++
	}
	return n
}

// pick draws from wl and drops ids the registry does not know.
func (e *Engine) pick(wl brush.WeightedList) brush.ItemID {
	id := wl.Pick(e.rng)
	if !e.reg.Known(id) {
		return 0
	}
	return id
}
