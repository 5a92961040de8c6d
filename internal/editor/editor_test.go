package editor

import (
	"bytes"
	"encoding/json"
	"log"
	"math/rand"
	"strings"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"autoborder/internal/border"
	"autoborder/internal/brush"
	"autoborder/internal/catalog"
	"autoborder/internal/maps"
)

// Catalog item ids used below.
const (
	stoneSEDiag     brush.ItemID = 2012
	stoneHorizontal brush.ItemID = 2006
	torchHorizontal brush.ItemID = 2206
)

func newEngine(cat *catalog.Catalog) *border.Engine {
	return border.NewEngine(cat.Registry, nil, rand.New(rand.NewSource(1)), nil)
}

// grassLayout returns a w x h layout painted with grass only.
func grassLayout(w, h int) *maps.Layout {
	tiles := make([][]int, h)
	for y := range tiles {
		tiles[y] = make([]int, w)
	}
	return &maps.Layout{Name: "field", Width: w, Height: h, Tiles: tiles, Legend: []maps.Layer{{Ground: "grass"}}}
}

func borderItems(reg *brush.Registry, t *maps.Tile) []brush.ItemType {
	var out []brush.ItemType
	if t == nil {
		return out
	}
	for _, it := range t.Items() {
		if typ, ok := reg.ItemType(it.ID); ok && typ.IsBorder() {
			out = append(out, typ)
		}
	}
	return out
}

func TestBuildDefaultLayout(t *testing.T) {
	cat := catalog.MustDefault()
	l := maps.DefaultLayout()
	doc, err := Build(l, newEngine(cat), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	m := doc.Map()
	if m.Count() != l.Width*l.Height {
		t.Fatalf("expected %d tiles, got %d", l.Width*l.Height, m.Count())
	}

	if got := m.Tile(0, 0, 0).ItemIDs(); len(got) != 1 || got[0] != stoneSEDiag {
		t.Errorf("corner wall: expected [%d], got %v", stoneSEDiag, got)
	}
	if got := m.Tile(5, 0, 0).ItemIDs(); len(got) != 1 || got[0] != stoneHorizontal {
		t.Errorf("top wall: expected [%d], got %v", stoneHorizontal, got)
	}

	// The pond's corner touches sand, which borders everything.
	pond := m.Tile(10, 6, 0)
	bs := borderItems(cat.Registry, pond)
	if len(bs) == 0 {
		t.Fatalf("pond corner has no borders: %v", pond.ItemIDs())
	}
	for _, b := range bs {
		if b.BorderGroup != uint16(catalog.SandBorder) {
			t.Errorf("unexpected border group %d on pond corner", b.BorderGroup)
		}
	}
	if bs := borderItems(cat.Registry, m.Tile(3, 3, 0)); len(bs) != 0 {
		t.Errorf("open grass should have no borders, got %v", bs)
	}
}

func TestBuildUnknownBrush(t *testing.T) {
	cat := catalog.MustDefault()
	l := grassLayout(2, 2)
	l.Legend[0].Ground = "lava"
	_, err := Build(l, newEngine(cat), nil)
	if err == nil || !strings.Contains(err.Error(), "lava") {
		t.Fatalf("expected unknown brush error, got %v", err)
	}
}

func TestPaintWallAndDecoration(t *testing.T) {
	cat := catalog.MustDefault()
	doc := NewDocument(maps.New("walls", 3, 1, 1), newEngine(cat), rand.New(rand.NewSource(1)))

	for x := 0; x < 3; x++ {
		if !doc.Paint(maps.Position{X: x}, catalog.StoneWall) {
			t.Fatalf("paint wall at %d failed", x)
		}
	}
	mid := maps.Position{X: 1}
	if doc.Paint(mid, catalog.StoneWall) {
		t.Error("repainting the same wall should be a no-op")
	}
	if !doc.Paint(mid, catalog.Torch) {
		t.Fatal("torch on a wall should paint")
	}
	if doc.Paint(mid, catalog.Torch) {
		t.Error("second torch should be a no-op")
	}

	dirty := mapset.New[maps.Position]()
	for _, p := range Around(mid) {
		dirty.Put(p)
	}
	if n := doc.Reborder(dirty); n != 3 {
		t.Errorf("expected 3 tiles re-bordered, got %d", n)
	}
	got := doc.Map().Tile(1, 0, 0).ItemIDs()
	if len(got) != 2 || got[0] != stoneHorizontal || got[1] != torchHorizontal {
		t.Errorf("expected [%d %d], got %v", stoneHorizontal, torchHorizontal, got)
	}

	bare := NewDocument(maps.New("bare", 1, 1, 1), newEngine(cat), nil)
	if bare.Paint(maps.Position{}, catalog.Torch) {
		t.Error("torch without a wall should not paint")
	}
}

func TestPaintCarpetAndTable(t *testing.T) {
	cat := catalog.MustDefault()
	doc := NewDocument(maps.New("room", 2, 2, 1), newEngine(cat), nil)
	pos := maps.Position{}

	tests := []struct {
		name string
		id   brush.BrushID
		want bool
	}{
		{"carpet", catalog.RedCarpet, true},
		{"carpet again", catalog.RedCarpet, false},
		{"table", catalog.WoodenTable, true},
		{"unknown brush", 999, false},
		{"outside map", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pos
			if tt.name == "outside map" {
				p = maps.Position{X: 5}
				tt.id = catalog.Grass
			}
			if got := doc.Paint(p, tt.id); got != tt.want {
				t.Errorf("Paint = %v, want %v", got, tt.want)
			}
		})
	}
	if n := len(doc.Map().Tile(0, 0, 0).Items()); n != 2 {
		t.Errorf("expected carpet and table, got %d items", n)
	}
}

func TestLoopPaintRefreshesNeighbours(t *testing.T) {
	cat := catalog.MustDefault()
	var buf bytes.Buffer
	doc, err := Build(grassLayout(5, 5), newEngine(cat), rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	l := NewLoop(doc, cat, log.New(&buf, "", 0))
	id, ch := l.AddSession("ann")

	edits := l.EditChan()
	edits <- Edit{SessionID: id, Action: ActionSelect, Key: '3'}
	edits <- Edit{SessionID: id, Action: ActionPaint}
	l.tick()

	st := <-ch
	if st.Version != 1 || len(st.Sessions) != 1 {
		t.Fatalf("unexpected state: version %d, %d sessions", st.Version, len(st.Sessions))
	}
	if st.Sessions[0].Brush.Brush != catalog.Water {
		t.Errorf("expected water selected, got %+v", st.Sessions[0].Brush)
	}
	center := st.Map.Tile(2, 2, 0)
	g, _ := center.Ground()
	if cat.Registry.GroundOf(g.ID).ID != catalog.Water {
		t.Fatalf("center should be water, got ground %d", g.ID)
	}
	bs := borderItems(cat.Registry, center)
	if len(bs) == 0 {
		t.Fatal("water surrounded by grass should get a shore border")
	}
	for _, b := range bs {
		if b.BorderGroup != uint16(catalog.ShoreBorder) {
			t.Errorf("unexpected border group %d", b.BorderGroup)
		}
	}
	for _, p := range Around(maps.Position{X: 2, Y: 2}) {
		if p.X == 2 && p.Y == 2 {
			continue
		}
		if bs := borderItems(cat.Registry, st.Map.Tile(p.X, p.Y, 0)); len(bs) != 0 {
			t.Errorf("grass at %v should stay unbordered, got %v", p, bs)
		}
	}

	// Published maps are copies.
	if doc.Map().Tile(2, 2, 0) == center {
		t.Error("snapshot shares tiles with the document")
	}

	edits <- Edit{SessionID: id, Action: ActionErase}
	l.tick()
	st = <-ch
	if st.Map.Tile(2, 2, 0) != nil || st.Version != 2 {
		t.Errorf("erase not published: version %d", st.Version)
	}

	edits <- Edit{SessionID: id, Action: ActionRefresh}
	l.tick()
	<-ch
	if !strings.Contains(buf.String(), "refreshed 24 tiles") {
		t.Errorf("expected refresh log, got %q", buf.String())
	}
}

func TestLoopCursorStaysInBounds(t *testing.T) {
	cat := catalog.MustDefault()
	doc, err := Build(grassLayout(3, 3), newEngine(cat), nil)
	if err != nil {
		t.Fatal(err)
	}
	l := NewLoop(doc, cat, nil)
	id, ch := l.AddSession("bob")

	for i := 0; i < 5; i++ {
		l.EditChan() <- Edit{SessionID: id, Action: ActionLeft}
		l.EditChan() <- Edit{SessionID: id, Action: ActionUp}
	}
	l.EditChan() <- Edit{SessionID: "stranger", Action: ActionErase}
	l.tick()
	st := <-ch
	s := st.Sessions[0]
	if s.X != 0 || s.Y != 0 {
		t.Errorf("cursor escaped to (%d,%d)", s.X, s.Y)
	}
	if st.Version != 0 || st.Map.Count() != 9 {
		t.Error("unknown session should not edit")
	}
	if !strings.Contains(s.Describe(), "[1] grass") {
		t.Errorf("describe: %q", s.Describe())
	}
}

func TestRemoveSessionClosesChannel(t *testing.T) {
	cat := catalog.MustDefault()
	doc := NewDocument(maps.New("empty", 1, 1, 1), newEngine(cat), nil)
	l := NewLoop(doc, cat, nil)
	id, ch := l.AddSession("cy")
	wid, wch := l.Watch()

	l.tick()
	st := <-wch
	if len(st.Sessions) != 1 {
		t.Errorf("observers should not appear as sessions, got %d", len(st.Sessions))
	}

	l.RemoveSession(id)
	l.RemoveSession(wid)
	for range ch {
	}
	if _, ok := <-wch; ok {
		t.Error("watch channel should be closed")
	}
}

func TestSnapshotJSON(t *testing.T) {
	m := maps.New("snap", 2, 1, 1)
	m.GetOrCreate(1, 0, 0).SetGround(maps.Item{ID: 100})
	m.Tile(1, 0, 0).AddItem(maps.Item{ID: 1001})

	data, err := MarshalState(State{Map: m, Tick: 7})
	if err != nil {
		t.Fatal(err)
	}
	var got SnapshotJSON
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "snap" || got.Tick != 7 || len(got.Tiles) != 1 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	tile := got.Tiles[0]
	if tile.X != 1 || tile.Ground != 100 || len(tile.Items) != 1 || tile.Items[0] != 1001 {
		t.Errorf("unexpected tile: %+v", tile)
	}
}
