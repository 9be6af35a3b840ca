package mesher

import (
	"math"

	"github.com/alitto/pond/v2"

	"github.com/soypat/sdfterrain"
	"github.com/soypat/sdfterrain/cascade"
)

const (
	// transitionBand is how many voxels at each end of a well-behaved
	// sign interval are still sampled directly: only those can see the
	// sign change that matters to extraction. Tuned for terrain fields;
	// features thinner than the band inside a "uniform" interval are a
	// known tradeoff of the hint contract, not of this sampler.
	transitionBand = 3
	// interiorSentinel stands in for the field value deep inside a
	// uniform-sign span, with the sign's magnitude.
	interiorSentinel = 1000.0
)

// Sampler fills chunk grids from a field. Columns with a well-behaved
// sign assertion are filled from the assertion instead of evaluating the
// field voxel by voxel; columns without one are sampled directly. The
// produced grid is the same either way, the hint only saves evaluations.
type Sampler struct {
	pool pond.Pool
}

// NewSampler returns a sampler fanning column work out on pool.
// A nil pool samples on the calling goroutine.
func NewSampler(pool pond.Pool) *Sampler {
	return &Sampler{pool: pool}
}

// Sample fills and returns the grid for one chunk. Worker tasks write
// disjoint Z slices of the grid, so no synchronization beyond the final
// fan-in is needed.
func (s *Sampler) Sample(chunk cascade.Chunk, field sdfterrain.SDF3) *Grid {
	g := NewGrid(chunk)
	if s.pool == nil {
		for z := 0; z < g.nz; z++ {
			sampleSlice(g, field, z)
		}
		return g
	}
	group := s.pool.NewGroup()
	for z := 0; z < g.nz; z++ {
		z := z
		group.Submit(func() {
			sampleSlice(g, field, z)
		})
	}
	group.Wait()
	return g
}

// sampleSlice fills every column of one Z slice.
func sampleSlice(g *Grid, field sdfterrain.SDF3, z int) {
	filled := make([]bool, g.ny)
	for x := 0; x < g.nx; x++ {
		sampleColumn(g, field, x, z, filled)
	}
}

// sampleColumn fills the (x, z) column of samples along Y.
func sampleColumn(g *Grid, field sdfterrain.SDF3, x, z int, filled []bool) {
	for i := range filled {
		filled[i] = false
	}
	p := g.Pos(x, 0, z)
	direct := func(y int) {
		p.Y = g.chunk.Origin.Y + float64(y)*g.step
		g.set(x, y, z, field.Evaluate(p))
		filled[y] = true
	}

	ivs := sdfterrain.SignUniformOnY(field, p.X, p.Z)
	for _, iv := range ivs.Intervals() {
		lo, hi := columnSpan(g, iv)
		if lo > hi {
			continue
		}
		span := hi - lo + 1
		if !iv.Sign().WellBehaved() || span <= 2*transitionBand {
			for y := lo; y <= hi; y++ {
				direct(y)
			}
			continue
		}
		for y := lo; y < lo+transitionBand; y++ {
			direct(y)
		}
		for y := hi - transitionBand + 1; y <= hi; y++ {
			direct(y)
		}
		fill := interiorSentinel
		if iv.Sign() == sdfterrain.SignNegative {
			fill = -interiorSentinel
		}
		for y := lo + transitionBand; y <= hi-transitionBand; y++ {
			g.set(x, y, z, fill)
			filled[y] = true
		}
	}
	// Safety net: anything the hint did not cover is sampled directly.
	for y := 0; y < g.ny; y++ {
		if !filled[y] {
			direct(y)
		}
	}
}

// columnSpan maps an interval's [Left.Min, Right.Min) coordinate range to
// the inclusive sample index range it owns within the chunk.
func columnSpan(g *Grid, iv sdfterrain.SignInterval) (lo, hi int) {
	oy := g.chunk.Origin.Y
	lo = 0
	if !math.IsInf(iv.Left.Min, -1) {
		lo = int(math.Ceil((iv.Left.Min - oy) / g.step))
	}
	hi = g.ny - 1
	if !math.IsInf(iv.Right.Min, 1) {
		hi = int(math.Ceil((iv.Right.Min-oy)/g.step)) - 1
	}
	if lo < 0 {
		lo = 0
	}
	if hi > g.ny-1 {
		hi = g.ny - 1
	}
	return lo, hi
}
