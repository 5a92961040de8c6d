package render

import (
	"strings"

	"autoborder/internal/catalog"
	"autoborder/internal/maps"
)

// PlainText draws floor z of m without colors, one line per row.
func PlainText(cat *catalog.Catalog, m *maps.Map, z int) []string {
	lines := make([]string, m.Height)
	var sb strings.Builder
	for y := 0; y < m.Height; y++ {
		sb.Reset()
		for x := 0; x < m.Width; x++ {
			for _, c := range TileCells(cat, m.Tile(x, y, z)) {
				sb.WriteRune(c.Ch)
			}
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}
