package border

import "autoborder/internal/brush"

// Resolve returns the rule that governs the transition from first (the
// tile being bordered) to second (its neighbour). Either side may be nil.
//
// Precedence:
//  1. first below second and second has outer borders: first's inner rule
//     towards second, else second's outer rule towards first.
//  2. otherwise first's inner rule towards second.
//  3. second missing: first's inner rule against nothing.
//  4. first missing: second's outer rule against nothing.
//
// Friendship is not considered here.
func Resolve(first, second *brush.GroundBrush) *brush.BorderRule {
	switch {
	case first != nil && second != nil:
		if first.ZOrder < second.ZOrder && second.HasOuterBorder() {
			if first.HasInnerBorder() {
				if r := findRule(first, false, second.ID); r != nil {
					return r
				}
			}
			return findRule(second, true, first.ID)
		}
		if first.HasInnerBorder() {
			return findRule(first, false, second.ID)
		}
	case first != nil:
		if first.HasInnerZilchBorder() {
			return findZilchRule(first, false)
		}
	case second != nil:
		if second.HasOuterZilchBorder() {
			return findZilchRule(second, true)
		}
	}
	return nil
}

// findRule returns the first rule of g on the given side whose target
// covers id (directly or through All).
func findRule(g *brush.GroundBrush, outer bool, id brush.BrushID) *brush.BorderRule {
	for _, r := range g.Borders {
		if r.Outer != outer {
			continue
		}
		if r.To.Matches(id) {
			return r
		}
	}
	return nil
}

func findZilchRule(g *brush.GroundBrush, outer bool) *brush.BorderRule {
	for _, r := range g.Borders {
		if r.Outer == outer && r.To.Kind == brush.TargetNone {
			return r
		}
	}
	return nil
}
