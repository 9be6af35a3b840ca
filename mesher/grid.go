// Package mesher turns a signed distance field into per-chunk triangle
// meshes: a sparse voxel-grid sampler feeding a marching-cubes extractor.
package mesher

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/sdfterrain/cascade"
)

// Grid is the dense scalar sample cube for one chunk: (res+1)^3 samples
// indexed (y*nz+z)*nx+x, X varying fastest. A Grid is owned by exactly
// one meshing operation; it is written by the sampler and strictly
// read-only during extraction.
type Grid struct {
	chunk      cascade.Chunk
	nx, ny, nz int // samples per axis, res+1 each.
	step       float64
	data       []float64
}

// NewGrid allocates the sample cube for a chunk. It panics if the chunk
// resolution or size is not positive, which is a caller bug.
func NewGrid(chunk cascade.Chunk) *Grid {
	if chunk.Res < 1 {
		panic("chunk resolution must be at least 1")
	}
	if chunk.Size <= 0 {
		panic("chunk size must be positive")
	}
	n := chunk.Res + 1
	return &Grid{
		chunk: chunk,
		nx:    n, ny: n, nz: n,
		step: chunk.Size / float64(chunk.Res),
		data: make([]float64, n*n*n),
	}
}

// Chunk returns the chunk descriptor the grid samples.
func (g *Grid) Chunk() cascade.Chunk { return g.chunk }

// Res returns voxels per edge (one less than samples per edge).
func (g *Grid) Res() int { return g.nx - 1 }

// Step returns the world-space distance between adjacent samples.
func (g *Grid) Step() float64 { return g.step }

func (g *Grid) index(x, y, z int) int {
	return (y*g.nz+z)*g.nx + x
}

// At returns the sample at voxel coordinates (x, y, z).
func (g *Grid) At(x, y, z int) float64 {
	return g.data[g.index(x, y, z)]
}

func (g *Grid) set(x, y, z int, v float64) {
	g.data[g.index(x, y, z)] = v
}

// Pos returns the world position of sample (x, y, z).
func (g *Grid) Pos(x, y, z int) r3.Vec {
	return r3.Vec{
		X: g.chunk.Origin.X + float64(x)*g.step,
		Y: g.chunk.Origin.Y + float64(y)*g.step,
		Z: g.chunk.Origin.Z + float64(z)*g.step,
	}
}

// Local returns the position of sample (x, y, z) relative to the chunk
// origin.
func (g *Grid) Local(x, y, z int) r3.Vec {
	return r3.Vec{
		X: float64(x) * g.step,
		Y: float64(y) * g.step,
		Z: float64(z) * g.step,
	}
}

// Gradient estimates the field gradient at sample (x, y, z) by central
// differences, falling back to one-sided differences at grid boundaries.
func (g *Grid) Gradient(x, y, z int) r3.Vec {
	return r3.Vec{
		X: g.delta(x, y, z, 0),
		Y: g.delta(x, y, z, 1),
		Z: g.delta(x, y, z, 2),
	}
}

func (g *Grid) delta(x, y, z, axis int) float64 {
	i, n := x, g.nx
	switch axis {
	case 1:
		i, n = y, g.ny
	case 2:
		i, n = z, g.nz
	}
	at := func(j int) float64 {
		switch axis {
		case 0:
			return g.At(j, y, z)
		case 1:
			return g.At(x, j, z)
		}
		return g.At(x, y, j)
	}
	switch {
	case i == 0:
		return (at(1) - at(0)) / g.step
	case i == n-1:
		return (at(n-1) - at(n-2)) / g.step
	}
	return (at(i+1) - at(i-1)) / (2 * g.step)
}

// HasSurface reports whether the grid contains any sign change. A grid
// without one extracts to an empty mesh.
func (g *Grid) HasSurface() bool {
	neg, pos := false, false
	for _, v := range g.data {
		if v < 0 {
			neg = true
		} else {
			pos = true
		}
		if neg && pos {
			return true
		}
	}
	return false
}
