package brush

// ItemID is a map item type id. Zero means "no item".
type ItemID uint16

// BrushID identifies a brush in a Registry. Zero means "no brush".
type BrushID uint32

// AutoBorderID identifies an AutoBorder in a Registry. Zero means "none".
type AutoBorderID uint32

const (
	NoBrush  BrushID = 0
	BrushAll BrushID = 0xFFFFFFFF // matches every brush in friends lists and rule targets
)

// AutoBorder is a named set of directional border items shared by ground
// brushes. Tiles is indexed by Direction; slot 0 is unused.
type AutoBorder struct {
	ID               AutoBorderID
	Name             string
	Group            uint16
	GroundEquivalent bool
	Tiles            [BorderSlots]ItemID
}

// Item returns the item id for direction d, or 0.
func (ab *AutoBorder) Item(d Direction) ItemID {
	if ab == nil || int(d) >= BorderSlots {
		return 0
	}
	return ab.Tiles[d]
}

// TargetKind selects what a BorderRule borders against.
type TargetKind uint8

const (
	TargetNone  TargetKind = iota // border against nothing (empty tile)
	TargetBrush                   // one specific brush
	TargetAll                     // any other brush
)

// BorderTarget is the "to" side of a BorderRule.
type BorderTarget struct {
	Kind  TargetKind
	Brush BrushID
}

// To targets a specific brush.
func To(id BrushID) BorderTarget { return BorderTarget{Kind: TargetBrush, Brush: id} }

// ToAll targets every brush.
func ToAll() BorderTarget { return BorderTarget{Kind: TargetAll} }

// ToNothing targets empty neighbours.
func ToNothing() BorderTarget { return BorderTarget{Kind: TargetNone} }

// Matches reports whether the target covers brush id (or All).
func (t BorderTarget) Matches(id BrushID) bool {
	switch t.Kind {
	case TargetAll:
		return true
	case TargetBrush:
		return t.Brush == id
	}
	return false
}

// SpecificCase is a post-placement rewrite over the border run of a tile.
type SpecificCase struct {
	MatchItems          []ItemID
	MatchGroup          uint16
	GroupMatchAlignment Direction
	ReplaceID           ItemID
	WithID              ItemID
	DeleteAll           bool
	KeepBorder          bool
}

// Required is the number of matches needed before the case fires.
func (sc *SpecificCase) Required() int {
	if len(sc.MatchItems) == 0 && sc.MatchGroup > 0 {
		return 1
	}
	return len(sc.MatchItems)
}

// BorderRule binds an AutoBorder to the brush it transitions into.
type BorderRule struct {
	Border        AutoBorderID
	To            BorderTarget
	Outer         bool
	SpecificCases []SpecificCase
}

// GroundBrush paints ground items and owns the rules for bordering them.
type GroundBrush struct {
	ID             BrushID
	Name           string
	ZOrder         int32
	Randomize      bool
	Fill           WeightedList
	Borders        []*BorderRule
	OptionalBorder AutoBorderID
	SoloOptional   bool
	Friends        []BrushID
	HateFriends    bool
}

func (g *GroundBrush) hasRule(outer, zilch bool) bool {
	for _, r := range g.Borders {
		if r.Outer != outer {
			continue
		}
		if (r.To.Kind == TargetNone) == zilch {
			return true
		}
	}
	return false
}

// HasOuterBorder reports an outer rule against some brush.
func (g *GroundBrush) HasOuterBorder() bool { return g.hasRule(true, false) }

// HasInnerBorder reports an inner rule against some brush.
func (g *GroundBrush) HasInnerBorder() bool { return g.hasRule(false, false) }

// HasOuterZilchBorder reports an outer rule against nothing.
func (g *GroundBrush) HasOuterZilchBorder() bool { return g.hasRule(true, true) }

// HasInnerZilchBorder reports an inner rule against nothing.
func (g *GroundBrush) HasInnerZilchBorder() bool { return g.hasRule(false, true) }

// HasOptionalBorder reports whether the brush draws a mountain overlay.
func (g *GroundBrush) HasOptionalBorder() bool { return g.OptionalBorder != 0 }

// FriendOf reports whether g lists other as a friend. With HateFriends
// set the list names enemies instead, so everything else is a friend.
func (g *GroundBrush) FriendOf(other *GroundBrush) bool {
	if other == nil {
		return false
	}
	for _, id := range g.Friends {
		if id == other.ID || id == BrushAll {
			return !g.HateFriends
		}
	}
	return g.HateFriends
}

// Friends reports whether either brush declares the other a friend.
func Friends(a, b *GroundBrush) bool {
	if a == nil || b == nil {
		return false
	}
	return a.FriendOf(b) || b.FriendOf(a)
}

// DoorType classifies door items of a wall slot.
type DoorType uint8

const (
	DoorUndefined DoorType = iota
	DoorArchway
	DoorNormal
	DoorLocked
	DoorQuest
	DoorMagic
	DoorWindow
	DoorHatchWindow
)

// DoorSpec is a door variant that fits a wall alignment.
type DoorSpec struct {
	Type   DoorType
	ID     ItemID
	Locked bool
}

// WallNode is the item table for one wall alignment.
type WallNode struct {
	Items WeightedList
	Doors []DoorSpec
}

// WallBrush paints walls. RedirectTo links to a fallback brush; the chain
// may loop back on itself.
type WallBrush struct {
	ID         BrushID
	Name       string
	Friends    []BrushID
	RedirectTo BrushID
	Decoration bool
	Items      [WallSlots]WallNode
}

// FriendOf reports whether w lists other (or All) as a friend.
func (w *WallBrush) FriendOf(other *WallBrush) bool {
	if other == nil {
		return false
	}
	for _, id := range w.Friends {
		if id == other.ID || id == BrushAll {
			return true
		}
	}
	return false
}

// CarpetBrush paints carpets; Items is indexed by Direction.
type CarpetBrush struct {
	ID    BrushID
	Name  string
	Items [CarpetSlots]WeightedList
}

// TableBrush paints tables; Items is indexed by TableAlignment.
type TableBrush struct {
	ID    BrushID
	Name  string
	Items [TableSlots]WeightedList
}
