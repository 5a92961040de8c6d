package maps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Layer names the brushes painted on one legend entry. Empty names
// paint nothing for that layer.
type Layer struct {
	Ground   string `json:"ground,omitempty"`
	Wall     string `json:"wall,omitempty"`
	Carpet   string `json:"carpet,omitempty"`
	Table    string `json:"table,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// Layout is a painting recipe: a grid of legend indices on floor 0.
type Layout struct {
	Name   string
	Width  int
	Height int
	Tiles  [][]int // [y][x] legend indices, -1 = leave empty
	Legend []Layer
}

// jsonLayout is the on-disk JSON format.
type jsonLayout struct {
	Name   string           `json:"name"`
	Width  int              `json:"width"`
	Height int              `json:"height"`
	Tiles  [][]int          `json:"tiles"`
	Legend map[string]Layer `json:"legend"`
}

// LoadLayout reads a JSON layout file from disk.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout file: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout decodes and validates a JSON layout.
func ParseLayout(data []byte) (*Layout, error) {
	var jl jsonLayout
	if err := json.Unmarshal(data, &jl); err != nil {
		return nil, fmt.Errorf("parse layout JSON: %w", err)
	}

	// Build legend array, find max index
	maxIdx := -1
	keys := make(map[int]Layer, len(jl.Legend))
	for k, layer := range jl.Legend {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("legend key %q is not a non-negative index", k)
		}
		keys[idx] = layer
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	legend := make([]Layer, maxIdx+1)
	for idx, layer := range keys {
		legend[idx] = layer
	}

	// Validate tile dimensions
	if len(jl.Tiles) != jl.Height {
		return nil, fmt.Errorf("tile rows %d != declared height %d", len(jl.Tiles), jl.Height)
	}
	for y, row := range jl.Tiles {
		if len(row) != jl.Width {
			return nil, fmt.Errorf("row %d has %d tiles, expected %d", y, len(row), jl.Width)
		}
		for x, idx := range row {
			if idx < -1 || idx >= len(legend) {
				return nil, fmt.Errorf("tile (%d,%d) index %d out of legend range [-1..%d]", x, y, idx, len(legend)-1)
			}
		}
	}

	return &Layout{
		Name:   jl.Name,
		Width:  jl.Width,
		Height: jl.Height,
		Tiles:  jl.Tiles,
		Legend: legend,
	}, nil
}

// Marshal encodes the layout in the on-disk format.
func (l *Layout) Marshal() ([]byte, error) {
	legend := make(map[string]Layer, len(l.Legend))
	for i, layer := range l.Legend {
		legend[strconv.Itoa(i)] = layer
	}
	return json.MarshalIndent(jsonLayout{
		Name:   l.Name,
		Width:  l.Width,
		Height: l.Height,
		Tiles:  l.Tiles,
		Legend: legend,
	}, "", "  ")
}

// LayerAt returns the layer painted at (x,y). ok is false for empty or
// out-of-bounds cells.
func (l *Layout) LayerAt(x, y int) (Layer, bool) {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return Layer{}, false
	}
	idx := l.Tiles[y][x]
	if idx < 0 || idx >= len(l.Legend) {
		return Layer{}, false
	}
	return l.Legend[idx], true
}

// LoadLayouts scans a directory for *.json files, loads each as a Layout,
// and returns them indexed by Name.
func LoadLayouts(dir string) (map[string]*Layout, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read layouts directory: %w", err)
	}

	all := make(map[string]*Layout)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		l, err := LoadLayout(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		if _, exists := all[l.Name]; exists {
			return nil, fmt.Errorf("duplicate layout name %q in %s", l.Name, entry.Name())
		}
		all[l.Name] = l
	}
	return all, nil
}

// DefaultLayout returns a small fallback layout: a grass field with a
// sand beach around a pond, fenced by a stone wall.
func DefaultLayout() *Layout {
	w, h := 32, 20
	tiles := make([][]int, h)
	for y := 0; y < h; y++ {
		tiles[y] = make([]int, w)
		for x := 0; x < w; x++ {
			switch {
			case x == 0 || x == w-1 || y == 0 || y == h-1:
				tiles[y][x] = 1 // wall on grass
			case x >= 10 && x < 18 && y >= 6 && y < 12:
				tiles[y][x] = 3 // water
			case x >= 8 && x < 20 && y >= 4 && y < 14:
				tiles[y][x] = 2 // sand
			default:
				tiles[y][x] = 0 // grass
			}
		}
	}

	return &Layout{
		Name:   "Default",
		Width:  w,
		Height: h,
		Tiles:  tiles,
		Legend: []Layer{
			{Ground: "grass"},
			{Ground: "grass", Wall: "stone wall"},
			{Ground: "sand"},
			{Ground: "water"},
		},
	}
}
