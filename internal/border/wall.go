package border

import (
	"github.com/zyedidia/generic/mapset"

	"autoborder/internal/brush"
	"autoborder/internal/maps"
)

// ResolveWallBorders re-aligns the wall run that follows t's border run
// to the walls in its 4 cardinal neighbours. Items are only ever re-skinned
// in place: a wall with no usable replacement is kept as it is.
func (e *Engine) ResolveWallBorders(m Map, t *maps.Tile) {
	if t == nil {
		return
	}
	items := t.Items()
	start := e.borderRunLen(items)
	end := start
	for end < len(items) && e.isWall(items[end].ID) {
		end++
	}
	if start == end {
		return
	}

	run := items[start:end]
	pos := t.Position()
	out := make([]maps.Item, 0, len(run))

	for i := 0; i < len(run); {
		it := run[i]
		wb := e.reg.WallOf(it.ID)
		if wb == nil || wb.Decoration {
			out = append(out, it)
			i++
			continue
		}
		typ, _ := e.reg.ItemType(it.ID)
		current := brush.WallAlignment(typ.Alignment)
		if current == brush.WallUntouchable {
			out = append(out, it)
			i++
			continue
		}

		mask := e.wallMask(m, pos, wb)
		resolved := false
		for pass := 0; pass < 2 && !resolved; pass++ {
			target := e.tables.WallTarget(pass, mask)
			if current == target {
				out = append(out, it)
				i = e.realignDecorations(run, i+1, target, &out)
				resolved = true
				break
			}
			if id := e.replacementFor(wb, it.ID, target); id != 0 {
				out = append(out, maps.Item{ID: id, Selected: it.Selected})
				i = e.realignDecorations(run, i+1, target, &out)
				resolved = true
			}
		}
		if !resolved {
			out = append(out, it)
			i++
		}
	}

	t.ReplaceRange(start, end, out)
}

// wallMask builds the N/W/E/S mask of neighbours holding a wall that
// connects to wb.
func (e *Engine) wallMask(m Map, pos maps.Position, wb *brush.WallBrush) uint8 {
	var mask uint8
	for bit, off := range cardinals {
		if e.connects(neighbour(m, pos, off.dx, off.dy), wb) {
			mask |= 1 << bit
		}
	}
	return mask
}

// connects reports whether n holds a wall of wb's brush, a friend of it
// or a brush on the same redirect chain. The first such item decides, and
// a "hates me" item refuses.
func (e *Engine) connects(n *maps.Tile, wb *brush.WallBrush) bool {
	if n == nil {
		return false
	}
	for _, it := range n.Items() {
		typ, ok := e.reg.ItemType(it.ID)
		if !ok || !typ.IsWall() {
			continue
		}
		other := e.reg.Wall(typ.Brush)
		if other == nil {
			continue
		}
		if other.ID == wb.ID || wb.FriendOf(other) || other.FriendOf(wb) ||
			e.redirectsTo(wb, other.ID) || e.redirectsTo(other, wb.ID) {
			return !typ.WallHatesMe
		}
	}
	return false
}

// redirectsTo reports whether target is reachable from wb's redirect
// chain.
func (e *Engine) redirectsTo(wb *brush.WallBrush, target brush.BrushID) bool {
	visited := mapset.New[brush.BrushID]()
	for b := e.reg.Wall(wb.RedirectTo); b != nil && !visited.Has(b.ID); b = e.reg.Wall(b.RedirectTo) {
		if b.ID == target {
			return true
		}
		visited.Put(b.ID)
	}
	return false
}

// replacementFor finds an item for target along wb's redirect chain.
// Doors are swapped only for a door of the same type.
func (e *Engine) replacementFor(wb *brush.WallBrush, id brush.ItemID, target brush.WallAlignment) brush.ItemID {
	door, isDoor := doorOf(wb, id)
	visited := mapset.New[brush.BrushID]()
	for b := wb; b != nil; b = e.reg.Wall(b.RedirectTo) {
		if visited.Has(b.ID) {
			e.logger.Printf("wall brush %q: redirect cycle at %q", wb.Name, b.Name)
			return 0
		}
		visited.Put(b.ID)

		node := b.Items[target]
		if isDoor {
			for _, d := range node.Doors {
				if d.Type == door.Type && d.Locked == door.Locked && e.reg.Known(d.ID) {
					return d.ID
				}
			}
			continue
		}
		if got := e.pick(node.Items); got != 0 {
			return got
		}
	}
	return 0
}

// doorOf returns the door spec id has in wb, if it is a door.
func doorOf(wb *brush.WallBrush, id brush.ItemID) (brush.DoorSpec, bool) {
	for a := range wb.Items {
		for _, d := range wb.Items[a].Doors {
			if d.ID == id {
				return d, true
			}
		}
	}
	return brush.DoorSpec{}, false
}

// realignDecorations copies the decorations starting at run[j] into out,
// re-skinned for target, and returns the index after them. Decorations
// without an item for target are dropped.
func (e *Engine) realignDecorations(run []maps.Item, j int, target brush.WallAlignment, out *[]maps.Item) int {
	for ; j < len(run); j++ {
		it := run[j]
		db := e.reg.WallOf(it.ID)
		if db == nil || !db.Decoration {
			break
		}
		typ, _ := e.reg.ItemType(it.ID)
		if brush.WallAlignment(typ.Alignment) == target {
			*out = append(*out, it)
			continue
		}
		if id := e.pick(db.Items[target].Items); id != 0 {
			*out = append(*out, maps.Item{ID: id, Selected: it.Selected})
		}
	}
	return j
}
