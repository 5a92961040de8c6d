package maps

// Map is a dense grid of tiles over one or more floors. Cells stay nil
// until something is painted on them.
type Map struct {
	Name   string
	Width  int
	Height int
	Floors int

	tiles []*Tile
}

// New creates an empty map. floors below 1 is treated as 1.
func New(name string, width, height, floors int) *Map {
	if floors < 1 {
		floors = 1
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Map{
		Name:   name,
		Width:  width,
		Height: height,
		Floors: floors,
		tiles:  make([]*Tile, width*height*floors),
	}
}

// InBounds reports whether (x,y,z) lies inside the map.
func (m *Map) InBounds(x, y, z int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height && z >= 0 && z < m.Floors
}

func (m *Map) index(x, y, z int) int {
	return (z*m.Height+y)*m.Width + x
}

// Tile returns the tile at (x,y,z), or nil when it is absent or outside
// the map.
func (m *Map) Tile(x, y, z int) *Tile {
	if !m.InBounds(x, y, z) {
		return nil
	}
	return m.tiles[m.index(x, y, z)]
}

// GetOrCreate returns the tile at (x,y,z), creating it if needed. It
// returns nil outside the map.
func (m *Map) GetOrCreate(x, y, z int) *Tile {
	if !m.InBounds(x, y, z) {
		return nil
	}
	i := m.index(x, y, z)
	if m.tiles[i] == nil {
		m.tiles[i] = NewTile(Position{X: x, Y: y, Z: z})
	}
	return m.tiles[i]
}

// Remove deletes the tile at (x,y,z).
func (m *Map) Remove(x, y, z int) {
	if m.InBounds(x, y, z) {
		m.tiles[m.index(x, y, z)] = nil
	}
}

// Each calls fn for every present tile, floor by floor in row-major order.
func (m *Map) Each(fn func(*Tile)) {
	for _, t := range m.tiles {
		if t != nil {
			fn(t)
		}
	}
}

// Count returns the number of present tiles.
func (m *Map) Count() int {
	n := 0
	for _, t := range m.tiles {
		if t != nil {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	c := &Map{
		Name:   m.Name,
		Width:  m.Width,
		Height: m.Height,
		Floors: m.Floors,
		tiles:  make([]*Tile, len(m.tiles)),
	}
	for i, t := range m.tiles {
		if t != nil {
			c.tiles[i] = t.Clone()
		}
	}
	return c
}
