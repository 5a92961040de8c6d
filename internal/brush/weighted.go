package brush

import "math/rand"

// WeightedItem is one candidate id with its relative chance.
type WeightedItem struct {
	ID     ItemID
	Chance int
}

// WeightedList holds the candidates for one slot of a brush.
type WeightedList struct {
	Entries []WeightedItem
}

// Weighted builds a list from alternating id/chance pairs.
func Weighted(pairs ...int) WeightedList {
	var wl WeightedList
	for i := 0; i+1 < len(pairs); i += 2 {
		wl.Entries = append(wl.Entries, WeightedItem{ID: ItemID(pairs[i]), Chance: pairs[i+1]})
	}
	return wl
}

// Single is a list with exactly one candidate.
func Single(id ItemID) WeightedList {
	return WeightedList{Entries: []WeightedItem{{ID: id, Chance: 1}}}
}

// Total returns the sum of all positive chances.
func (wl WeightedList) Total() int {
	total := 0
	for _, e := range wl.Entries {
		if e.Chance > 0 {
			total += e.Chance
		}
	}
	return total
}

// Empty reports whether the list has no candidates.
func (wl WeightedList) Empty() bool {
	return len(wl.Entries) == 0
}

// Contains reports whether id is one of the candidates.
func (wl WeightedList) Contains(id ItemID) bool {
	for _, e := range wl.Entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Pick draws random(1, total) and returns the first entry whose cumulative
// chance reaches the draw. A zero total falls back to the first entry; an
// empty list returns 0. A nil rng uses the process-global source.
func (wl WeightedList) Pick(rng *rand.Rand) ItemID {
	if len(wl.Entries) == 0 {
		return 0
	}
	total := wl.Total()
	if total <= 0 {
		return wl.Entries[0].ID
	}

	var draw int
	if rng != nil {
		draw = rng.Intn(total) + 1
	} else {
		draw = rand.Intn(total) + 1
	}

	cumulative := 0
	for _, e := range wl.Entries {
		if e.Chance <= 0 {
			continue
		}
		cumulative += e.Chance
		if cumulative >= draw {
			return e.ID
		}
	}
	return wl.Entries[len(wl.Entries)-1].ID
}
