// Package editor owns the maps being painted. A single loop goroutine
// applies paint strokes from every session and re-borders the tiles each
// stroke touched before broadcasting the result.
package editor

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/zyedidia/generic/mapset"

	"autoborder/internal/border"
	"autoborder/internal/brush"
	"autoborder/internal/maps"
)

// Document is one map together with the engine that borders it.
type Document struct {
	m   *maps.Map
	eng *border.Engine
	reg *brush.Registry
	rng *rand.Rand
}

// NewDocument wraps m. A nil rng is seeded from the clock.
func NewDocument(m *maps.Map, eng *border.Engine, rng *rand.Rand) *Document {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Document{m: m, eng: eng, reg: eng.Registry(), rng: rng}
}

// Build paints layout l onto a fresh single-floor map and borders every
// tile.
func Build(l *maps.Layout, eng *border.Engine, rng *rand.Rand) (*Document, error) {
	d := NewDocument(maps.New(l.Name, l.Width, l.Height, 1), eng, rng)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			layer, ok := l.LayerAt(x, y)
			if !ok {
				continue
			}
			pos := maps.Position{X: x, Y: y}
			for _, name := range []string{layer.Ground, layer.Wall, layer.Carpet, layer.Table} {
				if name == "" {
					continue
				}
				id, err := d.reg.Lookup(name)
				if err != nil {
					return nil, fmt.Errorf("layout %q cell (%d,%d): %w", l.Name, x, y, err)
				}
				d.Paint(pos, id)
			}
			if layer.Optional {
				if t := d.m.Tile(x, y, 0); t != nil {
					t.SetOptionalBorder(true)
				}
			}
		}
	}
	d.BorderAll()
	return d, nil
}

// Map returns the document's map. Only the loop goroutine may touch it.
func (d *Document) Map() *maps.Map { return d.m }

// Paint applies brush id at pos and reports whether the tile changed.
// Ground replaces the ground item, walls replace the wall run, wall
// decorations hang on an existing wall, carpets and tables go on top.
func (d *Document) Paint(pos maps.Position, id brush.BrushID) bool {
	if !d.m.InBounds(pos.X, pos.Y, pos.Z) {
		return false
	}
	switch {
	case d.reg.Ground(id) != nil:
		return d.paintGround(pos, d.reg.Ground(id))
	case d.reg.Wall(id) != nil:
		return d.paintWall(pos, d.reg.Wall(id))
	case d.reg.Carpet(id) != nil:
		c := d.reg.Carpet(id)
		return d.paintTop(pos, d.pick(c.Items[brush.Center]), func(it brush.ItemID) bool { return d.reg.CarpetOf(it) == c })
	case d.reg.Table(id) != nil:
		tb := d.reg.Table(id)
		return d.paintTop(pos, d.pick(tb.Items[brush.TableAlone]), func(it brush.ItemID) bool { return d.reg.TableOf(it) == tb })
	}
	return false
}

func (d *Document) pick(wl brush.WeightedList) brush.ItemID {
	id := wl.Pick(d.rng)
	if !d.reg.Known(id) {
		return 0
	}
	return id
}

func (d *Document) paintGround(pos maps.Position, g *brush.GroundBrush) bool {
	t := d.m.GetOrCreate(pos.X, pos.Y, pos.Z)
	if cur, ok := t.Ground(); ok && d.reg.GroundOf(cur.ID) == g {
		return false
	}
	id := d.pick(g.Fill)
	if id == 0 {
		return false
	}
	t.SetGround(maps.Item{ID: id})
	return true
}

func (d *Document) paintWall(pos maps.Position, wb *brush.WallBrush) bool {
	id := d.pick(firstWallItems(wb))
	if id == 0 {
		return false
	}
	t := d.m.GetOrCreate(pos.X, pos.Y, pos.Z)
	start, end := d.wallRun(t)
	run := t.Items()[start:end]

	if wb.Decoration {
		hasWall := false
		for _, it := range run {
			if w := d.reg.WallOf(it.ID); w != nil && !w.Decoration {
				hasWall = true
			}
			if d.reg.WallOf(it.ID) == wb {
				return false
			}
		}
		if !hasWall {
			return false
		}
		t.InsertItem(end, maps.Item{ID: id})
		return true
	}

	for _, it := range run {
		if d.reg.WallOf(it.ID) == wb {
			return false
		}
	}
	t.ReplaceRange(start, end, []maps.Item{{ID: id}})
	return true
}

// paintTop puts id on top of the stack unless an item of the same brush
// is already there.
func (d *Document) paintTop(pos maps.Position, id brush.ItemID, same func(brush.ItemID) bool) bool {
	if id == 0 {
		return false
	}
	t := d.m.GetOrCreate(pos.X, pos.Y, pos.Z)
	for _, it := range t.Items() {
		if same(it.ID) {
			return false
		}
	}
	t.AddItem(maps.Item{ID: id})
	return true
}

// wallRun returns the bounds of the wall run after the border run.
func (d *Document) wallRun(t *maps.Tile) (int, int) {
	items := t.Items()
	start := 0
	for start < len(items) {
		typ, ok := d.reg.ItemType(items[start].ID)
		if !ok || !typ.IsBorder() {
			break
		}
		start++
	}
	end := start
	for end < len(items) {
		typ, ok := d.reg.ItemType(items[end].ID)
		if !ok || !typ.IsWall() {
			break
		}
		end++
	}
	return start, end
}

// firstWallItems returns the first alignment slot wb has items for.
func firstWallItems(wb *brush.WallBrush) brush.WeightedList {
	for a := range wb.Items {
		if !wb.Items[a].Items.Empty() {
			return wb.Items[a].Items
		}
	}
	return brush.WeightedList{}
}

// Erase removes everything at pos.
func (d *Document) Erase(pos maps.Position) bool {
	t := d.m.Tile(pos.X, pos.Y, pos.Z)
	if t == nil {
		return false
	}
	d.m.Remove(pos.X, pos.Y, pos.Z)
	return true
}

// ToggleOptional flips the optional border flag of the tile at pos.
func (d *Document) ToggleOptional(pos maps.Position) bool {
	t := d.m.Tile(pos.X, pos.Y, pos.Z)
	if t == nil {
		return false
	}
	t.SetOptionalBorder(!t.HasOptionalBorder())
	return true
}

// Around returns pos and its 8 neighbours.
func Around(pos maps.Position) []maps.Position {
	out := make([]maps.Position, 0, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			out = append(out, maps.Position{X: pos.X + dx, Y: pos.Y + dy, Z: pos.Z})
		}
	}
	return out
}

// Reborder runs the engine over every dirty tile in row-major order and
// returns how many tiles it visited.
func (d *Document) Reborder(dirty mapset.Set[maps.Position]) int {
	ps := make([]maps.Position, 0, dirty.Size())
	dirty.Each(func(p maps.Position) {
		if d.m.InBounds(p.X, p.Y, p.Z) {
			ps = append(ps, p)
		}
	})
	sort.Slice(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	n := 0
	for _, p := range ps {
		if t := d.m.Tile(p.X, p.Y, p.Z); t != nil {
			d.eng.Borderize(d.m, t)
			n++
		}
	}
	return n
}

// BorderAll runs the engine over every tile of the map.
func (d *Document) BorderAll() int {
	n := 0
	d.m.Each(func(t *maps.Tile) {
		d.eng.Borderize(d.m, t)
		n++
	})
	return n
}
