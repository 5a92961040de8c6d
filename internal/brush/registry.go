package brush

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicateBrush  = errors.New("duplicate brush id")
	ErrDuplicateBorder = errors.New("duplicate autoborder id")
	ErrUnknownBrush    = errors.New("unknown brush")
)

// RefError reports a brush field that points at something not registered.
type RefError struct {
	Brush BrushID
	Field string
	Ref   uint32
}

func (e *RefError) Error() string {
	return fmt.Sprintf("brush %d: %s references unknown id %d", e.Brush, e.Field, e.Ref)
}

// ItemKind classifies what a brush uses an item for.
type ItemKind uint8

const (
	KindPlain ItemKind = iota
	KindGround
	KindBorder
	KindWall
	KindCarpet
	KindTable
)

var kindNames = [...]string{"plain", "ground", "border", "wall", "carpet", "table"}

func (k ItemKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ItemType is the read-only metadata the engine needs about an item id.
// Alignment holds a Direction, WallAlignment or TableAlignment depending on Kind.
type ItemType struct {
	ID          ItemID
	Kind        ItemKind
	Brush       BrushID
	Alignment   uint8
	BorderGroup uint16
	WallHatesMe bool
	Name        string
}

// IsBorder reports whether items of this type belong to the border run.
func (t ItemType) IsBorder() bool { return t.Kind == KindBorder }

// IsWall reports whether items of this type belong to the wall run.
func (t ItemType) IsWall() bool { return t.Kind == KindWall }

// Registry is the arena every brush, AutoBorder and item type lives in.
// Cross references are ids resolved here. It is built once at load time
// and only read afterwards.
type Registry struct {
	grounds map[BrushID]*GroundBrush
	walls   map[BrushID]*WallBrush
	carpets map[BrushID]*CarpetBrush
	tables  map[BrushID]*TableBrush
	borders map[AutoBorderID]*AutoBorder
	items   map[ItemID]ItemType
	names   map[string]BrushID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		grounds: make(map[BrushID]*GroundBrush),
		walls:   make(map[BrushID]*WallBrush),
		carpets: make(map[BrushID]*CarpetBrush),
		tables:  make(map[BrushID]*TableBrush),
		borders: make(map[AutoBorderID]*AutoBorder),
		items:   make(map[ItemID]ItemType),
		names:   make(map[string]BrushID),
	}
}

func (r *Registry) claim(id BrushID, name string) error {
	if id == NoBrush || id == BrushAll {
		return fmt.Errorf("brush %q: reserved id %d", name, id)
	}
	if r.hasBrush(id) {
		return fmt.Errorf("brush %q (%d): %w", name, id, ErrDuplicateBrush)
	}
	if name != "" {
		if _, ok := r.names[name]; ok {
			return fmt.Errorf("brush name %q: %w", name, ErrDuplicateBrush)
		}
		r.names[name] = id
	}
	return nil
}

func (r *Registry) hasBrush(id BrushID) bool {
	if _, ok := r.grounds[id]; ok {
		return true
	}
	if _, ok := r.walls[id]; ok {
		return true
	}
	if _, ok := r.carpets[id]; ok {
		return true
	}
	_, ok := r.tables[id]
	return ok
}

// tag records item metadata unless the id is already claimed.
func (r *Registry) tag(t ItemType) {
	if t.ID == 0 {
		return
	}
	if _, ok := r.items[t.ID]; ok {
		return
	}
	r.items[t.ID] = t
}

// AddAutoBorder registers ab and tags its slots as border items.
func (r *Registry) AddAutoBorder(ab *AutoBorder) error {
	if ab.ID == 0 {
		return fmt.Errorf("autoborder %q: id must be non-zero", ab.Name)
	}
	if _, ok := r.borders[ab.ID]; ok {
		return fmt.Errorf("autoborder %d: %w", ab.ID, ErrDuplicateBorder)
	}
	r.borders[ab.ID] = ab
	for dir := North; dir < BorderSlots; dir++ {
		// A bare border tag left by a specific case is upgraded with the
		// slot's group and alignment.
		if t, ok := r.items[ab.Tiles[dir]]; ok && t.Kind == KindBorder && t.Alignment == 0 {
			delete(r.items, ab.Tiles[dir])
		}
		r.tag(ItemType{
			ID:          ab.Tiles[dir],
			Kind:        KindBorder,
			Alignment:   uint8(dir),
			BorderGroup: ab.Group,
			Name:        fmt.Sprintf("%s %s", ab.Name, dir),
		})
	}
	return nil
}

// AddGround registers a ground brush and tags its fill items.
func (r *Registry) AddGround(g *GroundBrush) error {
	if err := r.claim(g.ID, g.Name); err != nil {
		return err
	}
	r.grounds[g.ID] = g
	for _, e := range g.Fill.Entries {
		r.tag(ItemType{ID: e.ID, Kind: KindGround, Brush: g.ID, Name: g.Name})
	}
	// Replacement items land in the border run, so they must be
	// recognised as border items on the next recompute.
	for _, rule := range g.Borders {
		for _, sc := range rule.SpecificCases {
			r.tag(ItemType{ID: sc.WithID, Kind: KindBorder, Name: g.Name + " specific"})
		}
	}
	return nil
}

// AddWall registers a wall brush and tags every slot item with its alignment.
func (r *Registry) AddWall(w *WallBrush) error {
	if err := r.claim(w.ID, w.Name); err != nil {
		return err
	}
	r.walls[w.ID] = w
	for a := range w.Items {
		node := w.Items[a]
		for _, e := range node.Items.Entries {
			r.tag(ItemType{ID: e.ID, Kind: KindWall, Brush: w.ID, Alignment: uint8(a), Name: w.Name})
		}
		for _, d := range node.Doors {
			r.tag(ItemType{ID: d.ID, Kind: KindWall, Brush: w.ID, Alignment: uint8(a), Name: w.Name + " door"})
		}
	}
	return nil
}

// AddCarpet registers a carpet brush.
func (r *Registry) AddCarpet(c *CarpetBrush) error {
	if err := r.claim(c.ID, c.Name); err != nil {
		return err
	}
	r.carpets[c.ID] = c
	for a := range c.Items {
		for _, e := range c.Items[a].Entries {
			r.tag(ItemType{ID: e.ID, Kind: KindCarpet, Brush: c.ID, Alignment: uint8(a), Name: c.Name})
		}
	}
	return nil
}

// AddTable registers a table brush.
func (r *Registry) AddTable(t *TableBrush) error {
	if err := r.claim(t.ID, t.Name); err != nil {
		return err
	}
	r.tables[t.ID] = t
	for a := range t.Items {
		for _, e := range t.Items[a].Entries {
			r.tag(ItemType{ID: e.ID, Kind: KindTable, Brush: t.ID, Alignment: uint8(a), Name: t.Name})
		}
	}
	return nil
}

// SetItemType overrides the metadata of one item id, e.g. to flag a
// wall item that refuses to connect ("hates me").
func (r *Registry) SetItemType(t ItemType) {
	r.items[t.ID] = t
}

// ItemType returns the metadata for id.
func (r *Registry) ItemType(id ItemID) (ItemType, bool) {
	t, ok := r.items[id]
	return t, ok
}

// Known reports whether id is a registered item.
func (r *Registry) Known(id ItemID) bool {
	_, ok := r.items[id]
	return id != 0 && ok
}

// Ground returns the ground brush with the given id, or nil.
func (r *Registry) Ground(id BrushID) *GroundBrush { return r.grounds[id] }

// Wall returns the wall brush with the given id, or nil.
func (r *Registry) Wall(id BrushID) *WallBrush { return r.walls[id] }

// Carpet returns the carpet brush with the given id, or nil.
func (r *Registry) Carpet(id BrushID) *CarpetBrush { return r.carpets[id] }

// Table returns the table brush with the given id, or nil.
func (r *Registry) Table(id BrushID) *TableBrush { return r.tables[id] }

// AutoBorder returns the AutoBorder with the given id, or nil.
func (r *Registry) AutoBorder(id AutoBorderID) *AutoBorder { return r.borders[id] }

// Lookup resolves a brush name to its id.
func (r *Registry) Lookup(name string) (BrushID, error) {
	id, ok := r.names[name]
	if !ok {
		return NoBrush, fmt.Errorf("%q: %w", name, ErrUnknownBrush)
	}
	return id, nil
}

// GroundOf returns the ground brush that owns item id, or nil.
func (r *Registry) GroundOf(id ItemID) *GroundBrush {
	t, ok := r.items[id]
	if !ok || t.Kind != KindGround {
		return nil
	}
	return r.grounds[t.Brush]
}

// WallOf returns the wall brush that owns item id, or nil.
func (r *Registry) WallOf(id ItemID) *WallBrush {
	t, ok := r.items[id]
	if !ok || t.Kind != KindWall {
		return nil
	}
	return r.walls[t.Brush]
}

// CarpetOf returns the carpet brush that owns item id, or nil.
func (r *Registry) CarpetOf(id ItemID) *CarpetBrush {
	t, ok := r.items[id]
	if !ok || t.Kind != KindCarpet {
		return nil
	}
	return r.carpets[t.Brush]
}

// TableOf returns the table brush that owns item id, or nil.
func (r *Registry) TableOf(id ItemID) *TableBrush {
	t, ok := r.items[id]
	if !ok || t.Kind != KindTable {
		return nil
	}
	return r.tables[t.Brush]
}

// EachItem calls fn for every registered item type in ascending id order.
func (r *Registry) EachItem(fn func(ItemType)) {
	ids := make([]ItemID, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn(r.items[id])
	}
}

// Names returns all brush names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.names))
	for n := range r.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every cross reference resolves. It returns the
// first problem found as a *RefError.
func (r *Registry) Validate() error {
	ids := make([]BrushID, 0, len(r.grounds))
	for id := range r.grounds {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		g := r.grounds[id]
		if g.OptionalBorder != 0 && r.borders[g.OptionalBorder] == nil {
			return &RefError{Brush: g.ID, Field: "optional_border", Ref: uint32(g.OptionalBorder)}
		}
		for _, rule := range g.Borders {
			if rule.Border != 0 && r.borders[rule.Border] == nil {
				return &RefError{Brush: g.ID, Field: "border", Ref: uint32(rule.Border)}
			}
			if rule.To.Kind == TargetBrush && r.grounds[rule.To.Brush] == nil {
				return &RefError{Brush: g.ID, Field: "to", Ref: uint32(rule.To.Brush)}
			}
		}
	}

	wallIDs := make([]BrushID, 0, len(r.walls))
	for id := range r.walls {
		wallIDs = append(wallIDs, id)
	}
	sort.Slice(wallIDs, func(i, j int) bool { return wallIDs[i] < wallIDs[j] })
	for _, id := range wallIDs {
		w := r.walls[id]
		if w.RedirectTo != NoBrush && r.walls[w.RedirectTo] == nil {
			return &RefError{Brush: w.ID, Field: "redirect_to", Ref: uint32(w.RedirectTo)}
		}
	}
	return nil
}
