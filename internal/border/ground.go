package border

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"autoborder/internal/brush"
	"autoborder/internal/maps"
)

// Cluster z values outside the brush z-order range. Optional overlays
// always sort on top, borders against nothing always sort below.
const (
	ZOptional int32 = 0x7FFFFFFF
	ZNothing  int32 = -1000
)

// cluster is one AutoBorder to emit with the directions it covers.
type cluster struct {
	border    brush.AutoBorderID
	alignment uint8
	z         int32
}

// mergeCluster folds mask into the cluster already using ab, or starts a
// new one. The merged z is the highest seen.
func mergeCluster(cs []cluster, ab brush.AutoBorderID, mask uint8, z int32) []cluster {
	for i := range cs {
		if cs[i].border == ab && cs[i].z != ZOptional {
			cs[i].alignment |= mask
			if z > cs[i].z {
				cs[i].z = z
			}
			return cs
		}
	}
	return append(cs, cluster{border: ab, alignment: mask, z: z})
}

// CalculateGroundBorders recomputes the border run at the front of t's
// item stack from its 8 neighbours. Existing border items are replaced;
// everything else on the tile is left untouched.
func (e *Engine) CalculateGroundBorders(m Map, t *maps.Tile) {
	if t == nil {
		return
	}
	self := e.groundBrush(t)
	pos := t.Position()

	var others [8]*brush.GroundBrush
	var visited [8]bool
	for i, off := range compass {
		others[i] = e.groundBrush(neighbour(m, pos, off.dx, off.dy))
	}

	// fold marks every unvisited direction from i on whose neighbour
	// brush equals b (nil included) and returns them as a mask.
	fold := func(i int, b *brush.GroundBrush) uint8 {
		var mask uint8
		for j := i; j < len(others); j++ {
			if !visited[j] && others[j] == b {
				visited[j] = true
				mask |= 1 << j
			}
		}
		return mask
	}

	var clusters []cluster
	var touched []*brush.BorderRule
	seen := mapset.New[*brush.BorderRule]()
	touch := func(r *brush.BorderRule) {
		if len(r.SpecificCases) == 0 || seen.Has(r) {
			return
		}
		seen.Put(r)
		touched = append(touched, r)
	}

	for i := range others {
		if visited[i] {
			continue
		}
		other := others[i]
		switch {
		case self != nil && other != nil:
			if other.ID == self.ID {
				break
			}
			if !other.HasOuterBorder() && !self.HasInnerBorder() {
				break
			}
			optionalOnly := false
			if brush.Friends(self, other) {
				if !other.HasOptionalBorder() {
					break
				}
				optionalOnly = true
			}
			mask := fold(i, other)
			if other.HasOptionalBorder() && t.HasOptionalBorder() {
				clusters = append(clusters, cluster{border: other.OptionalBorder, alignment: mask, z: ZOptional})
				if other.SoloOptional {
					optionalOnly = true
				}
			}
			if optionalOnly {
				break
			}
			if r := Resolve(self, other); r != nil {
				touch(r)
				if r.Border != 0 {
					clusters = mergeCluster(clusters, r.Border, mask, other.ZOrder)
				}
			}
		case self != nil:
			if !self.HasInnerZilchBorder() {
				break
			}
			mask := fold(i, nil)
			if r := Resolve(self, nil); r != nil {
				touch(r)
				if r.Border != 0 {
					clusters = mergeCluster(clusters, r.Border, mask, ZNothing)
				}
			}
		case other != nil:
			if !other.HasOuterZilchBorder() {
				break
			}
			mask := fold(i, other)
			if r := Resolve(nil, other); r != nil {
				touch(r)
				if r.Border != 0 {
					clusters = mergeCluster(clusters, r.Border, mask, ZNothing)
				}
			}
		}
		visited[i] = true
	}

	t.RemoveItems(func(it maps.Item) bool { return e.isBorder(it.ID) })

	// Highest z is emitted first, so each later insert at the front ends
	// up below it: the final run reads bottom-up in ascending z.
	sort.SliceStable(clusters, func(a, b int) bool { return clusters[a].z < clusters[b].z })
	for k := len(clusters) - 1; k >= 0; k-- {
		c := clusters[k]
		ab := e.reg.AutoBorder(c.border)
		if ab == nil {
			continue
		}
		for _, dir := range e.tables.GroundDirections(c.alignment) {
			if dir == brush.DirNone {
				break
			}
			if id := ab.Item(dir); id != 0 {
				e.insertBorder(t, id)
				continue
			}
			if first, second, ok := diagonalParts(dir); ok {
				e.insertBorder(t, ab.Item(first))
				e.insertBorder(t, ab.Item(second))
			}
		}
	}

	ApplySpecificCases(e.reg, t, touched)
}

// insertBorder places id at the front of t if it is a registered border
// item. Anything else would break the border run.
func (e *Engine) insertBorder(t *maps.Tile, id brush.ItemID) {
	if id == 0 || !e.isBorder(id) {
		return
	}
	t.InsertBorderItem(maps.Item{ID: id})
}

// diagonalParts returns the two edge slots that stand in for a missing
// diagonal, in insertion order.
func diagonalParts(d brush.Direction) (brush.Direction, brush.Direction, bool) {
	switch d {
	case brush.NorthWestDiagonal:
		return brush.West, brush.North, true
	case brush.NorthEastDiagonal:
		return brush.East, brush.North, true
	case brush.SouthWestDiagonal:
		return brush.South, brush.West, true
	case brush.SouthEastDiagonal:
		return brush.South, brush.East, true
	}
	return brush.DirNone, brush.DirNone, false
}
