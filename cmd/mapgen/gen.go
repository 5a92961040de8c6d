package main

import (
	"math/rand"

	"autoborder/internal/maps"
)

// Legend indices of generated layouts.
const (
	lWater = iota
	lSand
	lGrass
	lDirt
	lMountain
	lFoothill
	lWall
	lCarpet
	lTable
)

var legend = []maps.Layer{
	lWater:    {Ground: "water"},
	lSand:     {Ground: "sand"},
	lGrass:    {Ground: "grass"},
	lDirt:     {Ground: "dirt"},
	lMountain: {Ground: "mountain"},
	lFoothill: {Ground: "grass", Optional: true},
	lWall:     {Ground: "dirt", Wall: "stone wall"},
	lCarpet:   {Ground: "dirt", Carpet: "red carpet"},
	lTable:    {Ground: "dirt", Table: "wooden table"},
}

const hole = -1

var (
	elevationOctaves = Octaves{Freq: 0.04, Count: 4, Lacunarity: 2, Persistence: 0.5}
	moistureOctaves  = Octaves{Freq: 0.06, Count: 3, Lacunarity: 2, Persistence: 0.5}
	detailOctaves    = Octaves{Freq: 0.2, Count: 2, Lacunarity: 2, Persistence: 0.5}
)

// Options controls the generator.
type Options struct {
	Name   string
	Width  int
	Height int
	Seed   int64
	Ruins  int
}

// Generate builds a layout that crosses every ground transition the
// catalog knows: shores, beaches, dirt against grass and holes, and
// mountains with foothills, plus walled ruins with carpets and tables.
func Generate(o Options) *maps.Layout {
	elevation := NewSimplex(o.Seed)
	moisture := NewSimplex(o.Seed + 1)
	detail := NewSimplex(o.Seed + 2)

	tiles := make([][]int, o.Height)
	for y := range tiles {
		tiles[y] = make([]int, o.Width)
		for x := range tiles[y] {
			fx, fy := float64(x), float64(y)
			tiles[y][x] = classify(
				elevation.Fractal(fx, fy, elevationOctaves),
				moisture.Fractal(fx, fy, moistureOctaves),
				detail.Fractal(fx, fy, detailOctaves),
			)
		}
	}
	markFoothills(tiles)

	rng := rand.New(rand.NewSource(o.Seed + 100))
	for i := 0; i < o.Ruins; i++ {
		placeRuin(tiles, rng)
	}

	return &maps.Layout{
		Name:   o.Name,
		Width:  o.Width,
		Height: o.Height,
		Tiles:  tiles,
		Legend: append([]maps.Layer(nil), legend...),
	}
}

func classify(elev, moist, det float64) int {
	switch {
	case elev < 0.30:
		return lWater
	case elev < 0.36:
		return lSand
	case elev < 0.62:
		if moist < 0.35 {
			if det > 0.8 {
				return hole
			}
			return lDirt
		}
		return lGrass
	default:
		return lMountain
	}
}

// markFoothills flags grass next to a mountain so the mountain foot is
// drawn over it.
func markFoothills(tiles [][]int) {
	h := len(tiles)
	for y := range tiles {
		w := len(tiles[y])
		for x := range tiles[y] {
			if tiles[y][x] != lGrass {
				continue
			}
		scan:
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx >= 0 && nx < w && ny >= 0 && ny < h && tiles[ny][nx] == lMountain {
						tiles[y][x] = lFoothill
						break scan
					}
				}
			}
		}
	}
}

// placeRuin drops a walled room with a carpet and a table on dry land.
// Rooms that would cover water or mountains are skipped.
func placeRuin(tiles [][]int, rng *rand.Rand) {
	h := len(tiles)
	if h < 6 {
		return
	}
	w := len(tiles[0])
	if w < 6 {
		return
	}
	rw, rh := 5+rng.Intn(4), 4+rng.Intn(3)
	if rw > w-1 {
		rw = w - 1
	}
	if rh > h-1 {
		rh = h - 1
	}
	x0, y0 := rng.Intn(w-rw), rng.Intn(h-rh)

	for y := y0; y < y0+rh; y++ {
		for x := x0; x < x0+rw; x++ {
			switch tiles[y][x] {
			case lWater, lMountain:
				return
			}
		}
	}
	for y := y0; y < y0+rh; y++ {
		for x := x0; x < x0+rw; x++ {
			edge := x == x0 || x == x0+rw-1 || y == y0 || y == y0+rh-1
			switch {
			case edge && x == x0+rw/2 && y == y0+rh-1:
				tiles[y][x] = lDirt // doorway
			case edge:
				tiles[y][x] = lWall
			default:
				tiles[y][x] = lCarpet
			}
		}
	}
	tiles[y0+1][x0+1] = lTable
	tiles[y0+1][x0+2] = lTable
}

// Distribution counts cells per legend index; holes count under -1.
func Distribution(l *maps.Layout) map[int]int {
	counts := make(map[int]int)
	for _, row := range l.Tiles {
		for _, idx := range row {
			counts[idx]++
		}
	}
	return counts
}
