package main

import (
	"math"
	"math/rand"
)

// Simplex generates 2D simplex noise from a seed-shuffled permutation
// table.
type Simplex struct {
	perm [512]int
}

// NewSimplex creates a noise generator for seed.
func NewSimplex(seed int64) *Simplex {
	r := rand.New(rand.NewSource(seed))
	p := r.Perm(256)
	sn := &Simplex{}
	for i := range sn.perm {
		sn.perm[i] = p[i&255]
	}
	return sn
}

const (
	skew   = 0.3660254037844386  // (sqrt(3) - 1) / 2
	unskew = 0.21132486540518713 // (3 - sqrt(3)) / 6
)

// gradient is the dot product of one of 8 gradient vectors and (x, y).
func gradient(hash int, x, y float64) float64 {
	h := hash & 7
	if h >= 4 {
		x, y = y, x
	}
	if h&1 != 0 {
		x = -x
	}
	if h&2 != 0 {
		y = -y
	}
	return x + y
}

// corner returns one simplex corner's contribution.
func corner(hash int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t <= 0 {
		return 0
	}
	t *= t
	return t * t * gradient(hash, x, y)
}

// At returns noise at (x, y) in [-1, 1].
func (sn *Simplex) At(x, y float64) float64 {
	s := (x + y) * skew
	i := math.Floor(x + s)
	j := math.Floor(y + s)

	t := (i + j) * unskew
	x0 := x - (i - t)
	y0 := y - (j - t)

	// Lower or upper triangle of the skewed cell.
	di, dj := 0, 1
	if x0 > y0 {
		di, dj = 1, 0
	}

	ii, jj := int(i)&255, int(j)&255
	p := &sn.perm
	n := corner(p[ii+p[jj]], x0, y0) +
		corner(p[ii+di+p[jj+dj]], x0-float64(di)+unskew, y0-float64(dj)+unskew) +
		corner(p[ii+1+p[jj+1]], x0-1+2*unskew, y0-1+2*unskew)
	return 70 * n
}

// Octaves configures fractal noise.
type Octaves struct {
	Freq        float64
	Count       int
	Lacunarity  float64
	Persistence float64
}

// Fractal sums o.Count octaves of noise at (x, y), normalized to [0, 1].
func (sn *Simplex) Fractal(x, y float64, o Octaves) float64 {
	var total, norm float64
	amp, freq := 1.0, o.Freq
	for i := 0; i < o.Count; i++ {
		total += sn.At(x*freq, y*freq) * amp
		norm += amp
		freq *= o.Lacunarity
		amp *= o.Persistence
	}
	if norm == 0 {
		return 0.5
	}
	return (total/norm + 1) / 2
}
