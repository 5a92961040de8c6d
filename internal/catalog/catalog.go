// Package catalog ships the built-in brush set: ground brushes with their
// AutoBorders, walls, a carpet and a table, plus how every item looks in
// a terminal.
package catalog

import (
	"fmt"

	"autoborder/internal/brush"
)

// Brush ids.
const (
	Grass    brush.BrushID = 1
	Sand     brush.BrushID = 2
	Water    brush.BrushID = 3
	Dirt     brush.BrushID = 4
	Mountain brush.BrushID = 5

	StoneWall     brush.BrushID = 10
	FrameworkWall brush.BrushID = 11
	Torch         brush.BrushID = 12

	RedCarpet   brush.BrushID = 20
	WoodenTable brush.BrushID = 30
)

// AutoBorder ids.
const (
	SandBorder   brush.AutoBorderID = 1
	ShoreBorder  brush.AutoBorderID = 2
	VoidEdge     brush.AutoBorderID = 3
	DirtBorder   brush.AutoBorderID = 4
	MountainFoot brush.AutoBorderID = 5
	RockBorder   brush.AutoBorderID = 6
)

// Item id bases. AutoBorder n uses 1000+(n-1)*100+direction.
const (
	groundBase     brush.ItemID = 100
	borderBase     brush.ItemID = 1000
	borderIDStride brush.ItemID = 100
	sandStripNS    brush.ItemID = 1020
	sandStripWE    brush.ItemID = 1021
	stoneBase      brush.ItemID = 2000
	stoneDoors     brush.ItemID = 2040
	untouchable    brush.ItemID = 2099
	frameBase      brush.ItemID = 2100
	torchBase      brush.ItemID = 2200
	carpetBase     brush.ItemID = 3000
	tableBase      brush.ItemID = 4000
)

// BorderItem returns the item id AutoBorder ab uses for direction d.
func BorderItem(ab brush.AutoBorderID, d brush.Direction) brush.ItemID {
	return borderBase + brush.ItemID(ab-1)*borderIDStride + brush.ItemID(d)
}

// PaletteEntry is one brush a user can pick.
type PaletteEntry struct {
	Key   rune
	Name  string
	Kind  brush.ItemKind
	Brush brush.BrushID
}

// Catalog is a registry with its palette and item looks.
type Catalog struct {
	Registry *brush.Registry
	Palette  []PaletteEntry
	looks    map[brush.ItemID]Appearance
}

// Default builds the built-in catalog.
func Default() (*Catalog, error) {
	reg := brush.NewRegistry()

	for _, ab := range autoBorders() {
		if err := reg.AddAutoBorder(ab); err != nil {
			return nil, fmt.Errorf("add autoborder %q: %w", ab.Name, err)
		}
	}
	for _, g := range groundBrushes() {
		if err := reg.AddGround(g); err != nil {
			return nil, fmt.Errorf("add ground %q: %w", g.Name, err)
		}
	}
	for _, w := range wallBrushes() {
		if err := reg.AddWall(w); err != nil {
			return nil, fmt.Errorf("add wall %q: %w", w.Name, err)
		}
	}
	if err := reg.AddCarpet(redCarpet()); err != nil {
		return nil, fmt.Errorf("add carpet: %w", err)
	}
	if err := reg.AddTable(woodenTable()); err != nil {
		return nil, fmt.Errorf("add table: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	c := &Catalog{
		Registry: reg,
		Palette: []PaletteEntry{
			{'1', "grass", brush.KindGround, Grass},
			{'2', "sand", brush.KindGround, Sand},
			{'3', "water", brush.KindGround, Water},
			{'4', "dirt", brush.KindGround, Dirt},
			{'5', "mountain", brush.KindGround, Mountain},
			{'6', "stone wall", brush.KindWall, StoneWall},
			{'7', "framework wall", brush.KindWall, FrameworkWall},
			{'8', "red carpet", brush.KindCarpet, RedCarpet},
			{'9', "wooden table", brush.KindTable, WoodenTable},
			{'0', "torch", brush.KindWall, Torch},
		},
	}
	c.buildLooks()
	return c, nil
}

// MustDefault is Default for program start-up; it panics on error.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Entry returns the palette entry bound to key.
func (c *Catalog) Entry(key rune) (PaletteEntry, bool) {
	for _, e := range c.Palette {
		if e.Key == key {
			return e, true
		}
	}
	return PaletteEntry{}, false
}

// EntryByName returns the palette entry for a brush name.
func (c *Catalog) EntryByName(name string) (PaletteEntry, bool) {
	for _, e := range c.Palette {
		if e.Name == name {
			return e, true
		}
	}
	return PaletteEntry{}, false
}

var allBorderDirections = []brush.Direction{
	brush.North, brush.East, brush.South, brush.West,
	brush.NorthWestCorner, brush.NorthEastCorner, brush.SouthWestCorner, brush.SouthEastCorner,
	brush.NorthWestDiagonal, brush.NorthEastDiagonal, brush.SouthEastDiagonal, brush.SouthWestDiagonal,
}

func fullBorder(id brush.AutoBorderID, name string) *brush.AutoBorder {
	ab := &brush.AutoBorder{ID: id, Name: name, Group: uint16(id)}
	for _, d := range allBorderDirections {
		ab.Tiles[d] = BorderItem(id, d)
	}
	return ab
}

func autoBorders() []*brush.AutoBorder {
	// The void edge has no diagonals; they are drawn from two edges.
	void := &brush.AutoBorder{ID: VoidEdge, Name: "void edge", Group: uint16(VoidEdge)}
	for _, d := range allBorderDirections[:8] {
		void.Tiles[d] = BorderItem(VoidEdge, d)
	}
	return []*brush.AutoBorder{
		fullBorder(SandBorder, "sand"),
		fullBorder(ShoreBorder, "shore"),
		void,
		fullBorder(DirtBorder, "dirt"),
		fullBorder(MountainFoot, "mountain foot"),
		fullBorder(RockBorder, "rock"),
	}
}

func groundBrushes() []*brush.GroundBrush {
	return []*brush.GroundBrush{
		{
			ID: Grass, Name: "grass", ZOrder: 10, Randomize: true,
			Fill: brush.Weighted(int(groundBase), 40, int(groundBase+1), 30, int(groundBase+2), 20, int(groundBase+3), 10),
			Borders: []*brush.BorderRule{
				{Border: ShoreBorder, To: brush.To(Water), Outer: true},
			},
		},
		{
			ID: Sand, Name: "sand", ZOrder: 20, Randomize: true,
			Fill: brush.Weighted(int(groundBase+10), 70, int(groundBase+11), 30),
			Borders: []*brush.BorderRule{
				{
					Border: SandBorder, To: brush.ToAll(), Outer: true,
					// A one tile wide gap between sand reads as a strip,
					// not as two facing edges.
					SpecificCases: []brush.SpecificCase{
						{
							MatchItems: []brush.ItemID{BorderItem(SandBorder, brush.North), BorderItem(SandBorder, brush.South)},
							ReplaceID:  BorderItem(SandBorder, brush.North),
							WithID:     sandStripWE,
						},
						{
							MatchItems: []brush.ItemID{BorderItem(SandBorder, brush.West), BorderItem(SandBorder, brush.East)},
							ReplaceID:  BorderItem(SandBorder, brush.West),
							WithID:     sandStripNS,
						},
					},
				},
			},
		},
		{
			ID: Water, Name: "water", ZOrder: 5,
			Fill: brush.Weighted(int(groundBase+20), 80, int(groundBase+21), 20),
		},
		{
			ID: Dirt, Name: "dirt", ZOrder: 15,
			Fill: brush.Single(groundBase + 30),
			Borders: []*brush.BorderRule{
				{Border: DirtBorder, To: brush.To(Grass), Outer: true},
				{Border: VoidEdge, To: brush.ToNothing()},
			},
		},
		{
			ID: Mountain, Name: "mountain", ZOrder: 30,
			Fill: brush.Single(groundBase + 40),
			Borders: []*brush.BorderRule{
				{Border: RockBorder, To: brush.ToAll(), Outer: true},
			},
			OptionalBorder: MountainFoot,
			Friends:        []brush.BrushID{Grass},
		},
	}
}

func wallBrushes() []*brush.WallBrush {
	stone := &brush.WallBrush{ID: StoneWall, Name: "stone wall"}
	for a := brush.WallPole; a <= brush.WallIntersection; a++ {
		stone.Items[a].Items = brush.Single(stoneBase + brush.ItemID(a))
	}
	stone.Items[brush.WallHorizontal].Doors = []brush.DoorSpec{
		{Type: brush.DoorNormal, ID: stoneDoors},
		{Type: brush.DoorArchway, ID: stoneDoors + 2},
	}
	stone.Items[brush.WallVertical].Doors = []brush.DoorSpec{
		{Type: brush.DoorNormal, ID: stoneDoors + 1},
		{Type: brush.DoorArchway, ID: stoneDoors + 3},
	}
	stone.Items[brush.WallUntouchable].Items = brush.Single(untouchable)

	// Framework only has straight pieces and falls back to stone.
	frame := &brush.WallBrush{ID: FrameworkWall, Name: "framework wall", RedirectTo: StoneWall, Friends: []brush.BrushID{StoneWall}}
	for _, a := range []brush.WallAlignment{brush.WallPole, brush.WallHorizontal, brush.WallVertical} {
		frame.Items[a].Items = brush.Weighted(int(frameBase+brush.ItemID(a)), 3, int(frameBase+20+brush.ItemID(a)), 1)
	}

	torch := &brush.WallBrush{ID: Torch, Name: "torch", Decoration: true}
	torch.Items[brush.WallHorizontal].Items = brush.Single(torchBase + brush.ItemID(brush.WallHorizontal))
	torch.Items[brush.WallVertical].Items = brush.Single(torchBase + brush.ItemID(brush.WallVertical))

	return []*brush.WallBrush{stone, frame, torch}
}

func redCarpet() *brush.CarpetBrush {
	c := &brush.CarpetBrush{ID: RedCarpet, Name: "red carpet"}
	for d := brush.North; d <= brush.Center; d++ {
		c.Items[d] = brush.Single(carpetBase + brush.ItemID(d))
	}
	c.Items[brush.Center] = brush.Weighted(int(carpetBase+brush.ItemID(brush.Center)), 5, int(carpetBase+20), 1)
	return c
}

func woodenTable() *brush.TableBrush {
	t := &brush.TableBrush{ID: WoodenTable, Name: "wooden table"}
	for a := brush.TableAlone; a <= brush.TableWestEnd; a++ {
		t.Items[a] = brush.Single(tableBase + brush.ItemID(a))
	}
	return t
}
