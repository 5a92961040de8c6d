package editor

import (
	"encoding/json"

	"autoborder/internal/brush"
	"autoborder/internal/maps"
)

// TileJSON is one non-empty tile of a snapshot.
type TileJSON struct {
	X      int            `json:"x"`
	Y      int            `json:"y"`
	Z      int            `json:"z,omitempty"`
	Ground brush.ItemID   `json:"ground,omitempty"`
	Items  []brush.ItemID `json:"items"`
}

// SnapshotJSON is the wire form of a map snapshot.
type SnapshotJSON struct {
	Name   string     `json:"name"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Tick   uint64     `json:"tick"`
	Tiles  []TileJSON `json:"tiles"`
}

// Snapshot converts m into its wire form.
func Snapshot(m *maps.Map, tick uint64) SnapshotJSON {
	s := SnapshotJSON{
		Name:   m.Name,
		Width:  m.Width,
		Height: m.Height,
		Tick:   tick,
		Tiles:  make([]TileJSON, 0, m.Count()),
	}
	m.Each(func(t *maps.Tile) {
		pos := t.Position()
		tj := TileJSON{X: pos.X, Y: pos.Y, Z: pos.Z, Items: t.ItemIDs()}
		if g, ok := t.Ground(); ok {
			tj.Ground = g.ID
		}
		s.Tiles = append(s.Tiles, tj)
	})
	return s
}

// MarshalState encodes the map of st as snapshot JSON.
func MarshalState(st State) ([]byte, error) {
	return json.Marshal(Snapshot(st.Map, st.Tick))
}
