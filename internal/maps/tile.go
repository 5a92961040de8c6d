package maps

import "autoborder/internal/brush"

// Position is a tile coordinate. Z is the floor.
type Position struct {
	X, Y, Z int
}

// Item is one placed item instance.
type Item struct {
	ID       brush.ItemID
	Selected bool
}

// Tile holds a ground item and an ordered item stack. Border items are
// kept at the front, walls and wall decorations follow.
type Tile struct {
	pos      Position
	ground   *Item
	items    []Item
	optional bool
}

// NewTile creates an empty tile at pos.
func NewTile(pos Position) *Tile {
	return &Tile{pos: pos}
}

// Position returns the tile coordinate.
func (t *Tile) Position() Position { return t.pos }

// Ground returns the ground item if there is one.
func (t *Tile) Ground() (Item, bool) {
	if t.ground == nil {
		return Item{}, false
	}
	return *t.ground, true
}

// SetGround replaces the ground item.
func (t *Tile) SetGround(it Item) {
	g := it
	t.ground = &g
}

// ClearGround removes the ground item.
func (t *Tile) ClearGround() {
	t.ground = nil
}

// Items returns the item stack. Callers must not modify the slice.
func (t *Tile) Items() []Item { return t.items }

// InsertBorderItem puts it at the front of the stack.
func (t *Tile) InsertBorderItem(it Item) {
	t.items = append(t.items, Item{})
	copy(t.items[1:], t.items)
	t.items[0] = it
}

// AddItem appends it to the top of the stack.
func (t *Tile) AddItem(it Item) {
	t.items = append(t.items, it)
}

// InsertItem places it at index i, clamped to the stack bounds.
func (t *Tile) InsertItem(i int, it Item) {
	if i < 0 {
		i = 0
	}
	if i > len(t.items) {
		i = len(t.items)
	}
	t.items = append(t.items, Item{})
	copy(t.items[i+1:], t.items[i:])
	t.items[i] = it
}

// RemoveItems drops every item matched by fn and returns how many went.
func (t *Tile) RemoveItems(fn func(Item) bool) int {
	kept := t.items[:0]
	removed := 0
	for _, it := range t.items {
		if fn(it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	// Clear the tail so dropped items are not retained by the backing array.
	for i := len(kept); i < len(t.items); i++ {
		t.items[i] = Item{}
	}
	t.items = kept
	return removed
}

// SetItemID re-identifies the item at index i in place.
func (t *Tile) SetItemID(i int, id brush.ItemID) {
	if i < 0 || i >= len(t.items) {
		return
	}
	t.items[i].ID = id
}

// ReplaceRange swaps items[start:end] for repl in one step.
func (t *Tile) ReplaceRange(start, end int, repl []Item) {
	if start < 0 {
		start = 0
	}
	if end > len(t.items) {
		end = len(t.items)
	}
	if start > end {
		return
	}
	out := make([]Item, 0, len(t.items)-(end-start)+len(repl))
	out = append(out, t.items[:start]...)
	out = append(out, repl...)
	out = append(out, t.items[end:]...)
	t.items = out
}

// Clear removes ground and all items.
func (t *Tile) Clear() {
	t.ground = nil
	t.items = nil
	t.optional = false
}

// HasOptionalBorder reports whether the tile was painted in optional
// (mountain) border mode.
func (t *Tile) HasOptionalBorder() bool { return t.optional }

// SetOptionalBorder sets the optional border flag.
func (t *Tile) SetOptionalBorder(on bool) { t.optional = on }

// Empty reports whether the tile holds nothing.
func (t *Tile) Empty() bool {
	return t.ground == nil && len(t.items) == 0
}

// Clone returns a deep copy.
func (t *Tile) Clone() *Tile {
	c := &Tile{pos: t.pos, optional: t.optional}
	if t.ground != nil {
		g := *t.ground
		c.ground = &g
	}
	if len(t.items) > 0 {
		c.items = append([]Item(nil), t.items...)
	}
	return c
}

// ItemIDs returns the ids of the item stack in order.
func (t *Tile) ItemIDs() []brush.ItemID {
	ids := make([]brush.ItemID, len(t.items))
	for i, it := range t.items {
		ids[i] = it.ID
	}
	return ids
}
