package border

import (
	"autoborder/internal/brush"
	"autoborder/internal/maps"
)

// ApplySpecificCases runs the specific cases of each rule, in order, over
// the border run of t. Each case sees the run as left by the previous one.
func ApplySpecificCases(reg *brush.Registry, t *maps.Tile, rules []*brush.BorderRule) {
	for _, r := range rules {
		for i := range r.SpecificCases {
			applyCase(reg, t, &r.SpecificCases[i])
		}
	}
}

func applyCase(reg *brush.Registry, t *maps.Tile, sc *brush.SpecificCase) {
	required := sc.Required()
	if required == 0 {
		return
	}

	items := t.Items()
	run := 0
	for run < len(items) {
		typ, ok := reg.ItemType(items[run].ID)
		if !ok || !typ.IsBorder() {
			break
		}
		run++
	}

	matches := 0
	for _, it := range items[:run] {
		if caseMatches(reg, sc, it.ID) {
			matches++
		}
	}
	if matches < required {
		return
	}

	replaced := sc.DeleteAll
	out := make([]maps.Item, 0, run)
	for _, it := range items[:run] {
		if !replaced && sc.ReplaceID != 0 && it.ID == sc.ReplaceID {
			replaced = true
			if sc.WithID != 0 {
				it.ID = sc.WithID
				out = append(out, it)
			}
			continue
		}
		if !caseMatches(reg, sc, it.ID) || (sc.KeepBorder && !sc.DeleteAll) {
			out = append(out, it)
		}
	}
	t.ReplaceRange(0, run, out)
}

// caseMatches reports whether id counts towards sc: listed in MatchItems,
// or a border item of MatchGroup at GroupMatchAlignment.
func caseMatches(reg *brush.Registry, sc *brush.SpecificCase, id brush.ItemID) bool {
	if sc.MatchGroup > 0 {
		if typ, ok := reg.ItemType(id); ok && typ.IsBorder() &&
			typ.BorderGroup == sc.MatchGroup && brush.Direction(typ.Alignment) == sc.GroupMatchAlignment {
			return true
		}
	}
	for _, m := range sc.MatchItems {
		if m == id {
			return true
		}
	}
	return false
}
