package border

import (
	"testing"

	"autoborder/internal/brush"
	"autoborder/internal/maps"
)

const (
	sandBorderID  brush.AutoBorderID = 1
	edgeBorderID  brush.AutoBorderID = 2
	peakBorderID  brush.AutoBorderID = 3
	innerBorderID brush.AutoBorderID = 4
)

func grassBrush() *brush.GroundBrush {
	return &brush.GroundBrush{ID: 1, Name: "grass", ZOrder: 10, Fill: brush.Single(grassItem)}
}

// sandBrush borders every lower brush from the outside.
func sandBrush() *brush.GroundBrush {
	return &brush.GroundBrush{
		ID: 2, Name: "sand", ZOrder: 20, Fill: brush.Single(sandItem),
		Borders: []*brush.BorderRule{{Border: sandBorderID, To: brush.ToAll(), Outer: true}},
	}
}

func TestFlatGroundScenario(t *testing.T) {
	reg := mustRegistry(t,
		borderSet(sandBorderID, "sand", 1, 200, allDirections...),
		grassBrush(), sandBrush(),
	)
	e := newTestEngine(reg)
	m := buildTestMap([]string{
		"SSSSS",
		"SGGGS",
		"SGGGS",
		"SGGGS",
		"SSSSS",
	}, map[byte]brush.ItemID{'G': grassItem, 'S': sandItem})

	borderAll(m, e.CalculateGroundBorders)

	tests := []struct {
		name string
		x, y int
		want []brush.ItemID
	}{
		{"north west", 1, 1, []brush.ItemID{200 + brush.ItemID(brush.NorthWestDiagonal)}},
		{"north", 2, 1, []brush.ItemID{200 + brush.ItemID(brush.North)}},
		{"north east", 3, 1, []brush.ItemID{200 + brush.ItemID(brush.NorthEastDiagonal)}},
		{"west", 1, 2, []brush.ItemID{200 + brush.ItemID(brush.West)}},
		{"center", 2, 2, nil},
		{"east", 3, 2, []brush.ItemID{200 + brush.ItemID(brush.East)}},
		{"south west", 1, 3, []brush.ItemID{200 + brush.ItemID(brush.SouthWestDiagonal)}},
		{"south", 2, 3, []brush.ItemID{200 + brush.ItemID(brush.South)}},
		{"south east", 3, 3, []brush.ItemID{200 + brush.ItemID(brush.SouthEastDiagonal)}},
		{"outer sand", 0, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Tile(tt.x, tt.y, 0).ItemIDs()
			if !idsEqual(got, tt.want) {
				t.Errorf("tile (%d,%d): expected %v, got %v", tt.x, tt.y, tt.want, got)
			}
		})
	}
}

func TestGroundCorners(t *testing.T) {
	reg := mustRegistry(t,
		borderSet(sandBorderID, "sand", 1, 200, allDirections...),
		grassBrush(), sandBrush(),
	)
	e := newTestEngine(reg)
	m := buildTestMap([]string{
		"GGG",
		"GGG",
		"GGS",
	}, map[byte]brush.ItemID{'G': grassItem, 'S': sandItem})

	tile := m.Tile(1, 1, 0)
	e.CalculateGroundBorders(m, tile)
	want := []brush.ItemID{200 + brush.ItemID(brush.SouthEastCorner)}
	if got := tile.ItemIDs(); !idsEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDiagonalSynthesis(t *testing.T) {
	// Only edges: diagonals are built from their two cardinals.
	reg := mustRegistry(t,
		borderSet(sandBorderID, "sand", 1, 200, brush.North, brush.East, brush.South, brush.West),
		grassBrush(), sandBrush(),
	)
	e := newTestEngine(reg)
	m := buildTestMap([]string{
		"SSS",
		"SGG",
		"SGG",
	}, map[byte]brush.ItemID{'G': grassItem, 'S': sandItem})

	tile := m.Tile(1, 1, 0)
	e.CalculateGroundBorders(m, tile)
	// West is inserted first, then North in front of it.
	want := []brush.ItemID{200 + brush.ItemID(brush.North), 200 + brush.ItemID(brush.West)}
	if got := tile.ItemIDs(); !idsEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestZPrecedence(t *testing.T) {
	low := func(inner bool) *brush.GroundBrush {
		g := &brush.GroundBrush{ID: 1, Name: "low", ZOrder: 1, Fill: brush.Single(grassItem)}
		if inner {
			g.Borders = []*brush.BorderRule{{Border: innerBorderID, To: brush.To(2)}}
		}
		return g
	}
	high := &brush.GroundBrush{
		ID: 2, Name: "high", ZOrder: 2, Fill: brush.Single(sandItem),
		Borders: []*brush.BorderRule{{Border: sandBorderID, To: brush.To(1), Outer: true}},
	}
	rows := []string{
		"LLHH",
		"LLHH",
		"LLHH",
	}
	legend := map[byte]brush.ItemID{'L': grassItem, 'H': sandItem}
	east := brush.ItemID(brush.East)

	tests := []struct {
		name     string
		inner    bool
		wantLow  []brush.ItemID
		wantHigh []brush.ItemID
	}{
		{"lower brush inner rule", true, []brush.ItemID{400 + east}, nil},
		{"higher brush outer rule", false, []brush.ItemID{200 + east}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := *high
			reg := mustRegistry(t,
				borderSet(sandBorderID, "outer", 1, 200, allDirections...),
				borderSet(innerBorderID, "inner", 2, 400, allDirections...),
				low(tt.inner), &h,
			)
			e := newTestEngine(reg)
			m := buildTestMap(rows, legend)
			borderAll(m, e.CalculateGroundBorders)

			if got := m.Tile(1, 1, 0).ItemIDs(); !idsEqual(got, tt.wantLow) {
				t.Errorf("low tile: expected %v, got %v", tt.wantLow, got)
			}
			if got := m.Tile(2, 1, 0).ItemIDs(); !idsEqual(got, tt.wantHigh) {
				t.Errorf("high tile: expected %v, got %v", tt.wantHigh, got)
			}
		})
	}
}

func TestFriendshipSuppression(t *testing.T) {
	rows := []string{
		"GGG",
		"GGM",
		"GGG",
	}
	legend := map[byte]brush.ItemID{'G': grassItem, 'M': mountainItem}
	east := brush.ItemID(brush.East)

	tests := []struct {
		name     string
		optional brush.AutoBorderID
		solo     bool
		flagged  bool
		friends  bool
		want     []brush.ItemID
	}{
		{"strangers border", 0, false, false, false, []brush.ItemID{200 + east}},
		{"friends suppress", 0, false, false, true, nil},
		{"friends keep optional overlay", peakBorderID, false, true, true, []brush.ItemID{300 + east}},
		{"optional needs tile flag", peakBorderID, false, false, true, nil},
		{"optional drawn above transition", peakBorderID, false, true, false, []brush.ItemID{200 + east, 300 + east}},
		{"solo optional replaces transition", peakBorderID, true, true, false, []brush.ItemID{300 + east}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grass := grassBrush()
			mountain := &brush.GroundBrush{
				ID: 5, Name: "mountain", ZOrder: 30, Fill: brush.Single(mountainItem),
				Borders:        []*brush.BorderRule{{Border: sandBorderID, To: brush.ToAll(), Outer: true}},
				OptionalBorder: tt.optional,
				SoloOptional:   tt.solo,
			}
			if tt.friends {
				grass.Friends = []brush.BrushID{mountain.ID}
			}
			reg := mustRegistry(t,
				borderSet(sandBorderID, "sand", 1, 200, allDirections...),
				borderSet(peakBorderID, "peak", 3, 300, allDirections...),
				grass, mountain,
			)
			e := newTestEngine(reg)
			m := buildTestMap(rows, legend)
			tile := m.Tile(1, 1, 0)
			tile.SetOptionalBorder(tt.flagged)

			e.CalculateGroundBorders(m, tile)
			if got := tile.ItemIDs(); !idsEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOptionalNeedsATransition(t *testing.T) {
	// A neighbour with only an optional border and no outer rule, next to
	// a tile without inner rules, draws nothing.
	mountain := &brush.GroundBrush{
		ID: 5, Name: "mountain", ZOrder: 30, Fill: brush.Single(mountainItem),
		OptionalBorder: peakBorderID,
	}
	reg := mustRegistry(t,
		borderSet(peakBorderID, "peak", 3, 300, allDirections...),
		grassBrush(), mountain,
	)
	e := newTestEngine(reg)
	m := buildTestMap([]string{"GM"}, map[byte]brush.ItemID{'G': grassItem, 'M': mountainItem})
	tile := m.Tile(0, 0, 0)
	tile.SetOptionalBorder(true)

	e.CalculateGroundBorders(m, tile)
	if got := tile.ItemIDs(); len(got) != 0 {
		t.Errorf("expected no border, got %v", got)
	}
}

func TestHateFriends(t *testing.T) {
	grass := grassBrush()
	grass.HateFriends = true
	grass.Friends = []brush.BrushID{99}
	reg := mustRegistry(t,
		borderSet(sandBorderID, "sand", 1, 200, allDirections...),
		grass, sandBrush(),
	)
	e := newTestEngine(reg)
	m := buildTestMap([]string{"GS"}, map[byte]brush.ItemID{'G': grassItem, 'S': sandItem})
	tile := m.Tile(0, 0, 0)
	e.CalculateGroundBorders(m, tile)
	if got := tile.ItemIDs(); len(got) != 0 {
		t.Errorf("hate_friends grass should treat sand as a friend, got %v", got)
	}
}

func TestBorderAgainstNothing(t *testing.T) {
	// Dirt has an inner edge against nothing; water an outer one.
	dirt := &brush.GroundBrush{
		ID: 4, Name: "dirt", ZOrder: 15, Fill: brush.Single(dirtItem),
		Borders: []*brush.BorderRule{{Border: edgeBorderID, To: brush.ToNothing()}},
	}
	water := &brush.GroundBrush{
		ID: 3, Name: "water", ZOrder: 5, Fill: brush.Single(waterItem),
		Borders: []*brush.BorderRule{{Border: sandBorderID, To: brush.ToNothing(), Outer: true}},
	}
	reg := mustRegistry(t,
		borderSet(sandBorderID, "shore", 1, 200, allDirections...),
		borderSet(edgeBorderID, "edge", 2, 500, allDirections...),
		dirt, water,
	)
	e := newTestEngine(reg)

	t.Run("inner zilch on the painted tile", func(t *testing.T) {
		m := buildTestMap([]string{
			"DDD",
			"DD.",
			"DDD",
		}, map[byte]brush.ItemID{'D': dirtItem})
		tile := m.Tile(1, 1, 0)
		e.CalculateGroundBorders(m, tile)
		want := []brush.ItemID{500 + brush.ItemID(brush.East)}
		if got := tile.ItemIDs(); !idsEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("outer zilch on a bare tile", func(t *testing.T) {
		m := buildTestMap([]string{"WE"}, map[byte]brush.ItemID{'W': waterItem})
		tile := m.Tile(1, 0, 0)
		e.CalculateGroundBorders(m, tile)
		want := []brush.ItemID{200 + brush.ItemID(brush.West)}
		if got := tile.ItemIDs(); !idsEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func TestGroundZOrdering(t *testing.T) {
	// A grass tile between sand (z 20) and a higher brush (z 30):
	// the lower cluster is inserted last, so it ends up in front.
	peak := &brush.GroundBrush{
		ID: 5, Name: "peak", ZOrder: 30, Fill: brush.Single(mountainItem),
		Borders: []*brush.BorderRule{{Border: peakBorderID, To: brush.ToAll(), Outer: true}},
	}
	reg := mustRegistry(t,
		borderSet(sandBorderID, "sand", 1, 200, allDirections...),
		borderSet(peakBorderID, "peak", 3, 300, allDirections...),
		grassBrush(), sandBrush(), peak,
	)
	e := newTestEngine(reg)
	m := buildTestMap([]string{"SGP"}, map[byte]brush.ItemID{'G': grassItem, 'S': sandItem, 'P': mountainItem})
	tile := m.Tile(1, 0, 0)
	e.CalculateGroundBorders(m, tile)
	want := []brush.ItemID{200 + brush.ItemID(brush.West), 300 + brush.ItemID(brush.East)}
	if got := tile.ItemIDs(); !idsEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGroundIdempotence(t *testing.T) {
	reg := mustRegistry(t,
		borderSet(sandBorderID, "sand", 1, 200, allDirections...),
		grassBrush(), sandBrush(),
	)
	e := newTestEngine(reg)
	m := buildTestMap([]string{
		"GGSG.",
		"GSSGG",
		"GGGSG",
		".GSGG",
	}, map[byte]brush.ItemID{'G': grassItem, 'S': sandItem})

	// A non-border item must survive behind the border run.
	m.Tile(1, 0, 0).AddItem(maps.Item{ID: 9999})

	borderAll(m, e.CalculateGroundBorders)
	first := snapshot(m)
	borderAll(m, e.CalculateGroundBorders)
	second := snapshot(m)

	if len(first) != len(second) {
		t.Fatalf("tile count changed: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if !idsEqual(first[i], second[i]) {
			t.Errorf("tile %d: first pass %v, second pass %v", i, first[i], second[i])
		}
	}
	ids := m.Tile(1, 0, 0).ItemIDs()
	if len(ids) == 0 || ids[len(ids)-1] != 9999 {
		t.Errorf("plain item should stay last, got %v", ids)
	}
}

func TestGroundSkipsUnknownSlots(t *testing.T) {
	ab := borderSet(sandBorderID, "sand", 1, 200, brush.North)
	reg := mustRegistry(t, ab, grassBrush(), sandBrush())
	e := newTestEngine(reg)
	m := buildTestMap([]string{"GS"}, map[byte]brush.ItemID{'G': grassItem, 'S': sandItem})
	tile := m.Tile(0, 0, 0)
	e.CalculateGroundBorders(m, tile)
	if got := tile.ItemIDs(); len(got) != 0 {
		t.Errorf("missing east slot should emit nothing, got %v", got)
	}
}
