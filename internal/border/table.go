package border

import "autoborder/internal/maps"

// CalculateTable re-skins every table item on t from its same-brush
// cardinal neighbours.
func (e *Engine) CalculateTable(m Map, t *maps.Tile) {
	if t == nil {
		return
	}
	pos := t.Position()
	for i, it := range t.Items() {
		tb := e.reg.TableOf(it.ID)
		if tb == nil {
			continue
		}
		mask := sameBrushMask(m, pos, func(n *maps.Tile) bool {
			for _, o := range n.Items() {
				if other := e.reg.TableOf(o.ID); other != nil && other.ID == tb.ID {
					return true
				}
			}
			return false
		})
		list := tb.Items[e.tables.Table[mask]]
		if list.Contains(it.ID) {
			continue
		}
		if id := e.pick(list); id != 0 {
			t.SetItemID(i, id)
		}
	}
}
