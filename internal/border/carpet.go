package border

import (
	"autoborder/internal/brush"
	"autoborder/internal/maps"
)

// sameBrushMask builds the 8-neighbour mask of tiles for which has
// reports true.
func sameBrushMask(m Map, pos maps.Position, has func(*maps.Tile) bool) uint8 {
	var mask uint8
	for bit, off := range compass {
		if n := neighbour(m, pos, off.dx, off.dy); n != nil && has(n) {
			mask |= 1 << bit
		}
	}
	return mask
}

// CalculateCarpet re-skins every carpet item on t to match the carpets
// of the same brush around it. Items already valid for their alignment
// are kept, so repeated calls are stable.
func (e *Engine) CalculateCarpet(m Map, t *maps.Tile) {
	if t == nil {
		return
	}
	pos := t.Position()
	for i, it := range t.Items() {
		cb := e.reg.CarpetOf(it.ID)
		if cb == nil {
			continue
		}
		mask := sameBrushMask(m, pos, func(n *maps.Tile) bool {
			for _, o := range n.Items() {
				if c := e.reg.CarpetOf(o.ID); c != nil && c.ID == cb.ID {
					return true
				}
			}
			return false
		})
		list := cb.Items[e.tables.Carpet[mask]]
		if list.Empty() {
			list = cb.Items[brush.Center]
		}
		if list.Contains(it.ID) {
			continue
		}
		if id := e.pick(list); id != 0 {
			t.SetItemID(i, id)
		}
	}
}
