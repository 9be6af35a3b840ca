// Package cascade computes the concentric-ring level-of-detail chunk
// layout around a viewpoint and tracks which chunk origins currently
// have live meshes.
package cascade

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// chunksPerRing is the 3x3x3 neighborhood of a ring minus its center.
const chunksPerRing = 26

// Chunk describes an axis-aligned cube of world space meshed as one
// independent unit: Res voxels per edge over a cube of edge Size anchored
// at Origin. Immutable once produced.
type Chunk struct {
	Origin r3.Vec
	Size   float64
	Res    int
}

// Less orders chunks lexicographically by (Size, Res, Origin) for
// deduplication and stable output.
func (c Chunk) Less(o Chunk) bool {
	if c.Size != o.Size {
		return c.Size < o.Size
	}
	if c.Res != o.Res {
		return c.Res < o.Res
	}
	if c.Origin.X != o.Origin.X {
		return c.Origin.X < o.Origin.X
	}
	if c.Origin.Y != o.Origin.Y {
		return c.Origin.Y < o.Origin.Y
	}
	return c.Origin.Z < o.Origin.Z
}

// Bounds returns the world-space cube covered by the chunk.
func (c Chunk) Bounds() r3.Box {
	s := r3.Vec{X: c.Size, Y: c.Size, Z: c.Size}
	return r3.Box{Min: c.Origin, Max: r3.Add(c.Origin, s)}
}

// Config parameterizes a cascade. Ring k has edge size MinSize*3^k so
// each ring's 3x3x3 footprint is exactly the next ring's central cube and
// rings nest without gaps or overlaps.
type Config struct {
	// MinSize is the edge length of the center chunk and ring 0 chunks.
	MinSize float64
	// Rings is the number of concentric rings around the center chunk.
	Rings int
	// Resolution maps a ring index to voxels per chunk edge. The center
	// chunk uses ring 0 resolution. Nil means 32 voxels for every ring.
	Resolution func(ring int) int
}

func (cfg Config) validate() error {
	if cfg.MinSize <= 0 {
		return fmt.Errorf("cascade: min size must be positive, got %g", cfg.MinSize)
	}
	if cfg.Rings < 0 {
		return fmt.Errorf("cascade: ring count must be non-negative, got %d", cfg.Rings)
	}
	return nil
}

func (cfg Config) resolution(ring int) int {
	if cfg.Resolution == nil {
		return 32
	}
	return cfg.Resolution(ring)
}

// CenterOrigin quantizes a viewpoint to the origin of its center chunk
// by floor division per axis. Deterministic, no rounding to nearest.
func (cfg Config) CenterOrigin(viewpoint r3.Vec) r3.Vec {
	s := cfg.MinSize
	return r3.Vec{
		X: math.Floor(viewpoint.X/s) * s,
		Y: math.Floor(viewpoint.Y/s) * s,
		Z: math.Floor(viewpoint.Z/s) * s,
	}
}

// NeedsNewChunks reports whether moving from prev to next changes the
// quantized center chunk, and therefore the whole chunk set.
func (cfg Config) NeedsNewChunks(prev, next r3.Vec) bool {
	return cfg.CenterOrigin(prev) != cfg.CenterOrigin(next)
}

// Chunks returns the deterministic chunk set for a viewpoint: the center
// chunk followed by ring 0 through ring Rings-1, 1+26*Rings chunks total.
// Chunk content depends only on the quantized center cell of the
// viewpoint. The only error condition is the structural shell invariant
// (a ring not building exactly 26 chunks) and invalid configuration.
func (cfg Config) Chunks(viewpoint r3.Vec) ([]Chunk, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	center := cfg.CenterOrigin(viewpoint)
	out := make([]Chunk, 0, 1+chunksPerRing*cfg.Rings)
	out = append(out, Chunk{Origin: center, Size: cfg.MinSize, Res: cfg.resolution(0)})

	// lower tracks the lower corner of the current ring's 3x3x3 footprint,
	// stepped outward by the next ring's edge size each iteration.
	lower := center
	size := cfg.MinSize
	for ring := 0; ring < cfg.Rings; ring++ {
		lower = r3.Sub(lower, r3.Vec{X: size, Y: size, Z: size})
		shell, err := shellChunks(lower, size, cfg.resolution(ring))
		if err != nil {
			return nil, fmt.Errorf("cascade ring %d: %w", ring, err)
		}
		out = append(out, shell...)
		size *= 3
	}
	return out, nil
}

// shellChunks builds the 26-chunk shell of edge size around the central
// cube of a 3x3x3 neighborhood anchored at lower.
func shellChunks(lower r3.Vec, size float64, res int) ([]Chunk, error) {
	shell := make([]Chunk, 0, chunksPerRing)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				if i == 1 && j == 1 && k == 1 {
					continue // central cube belongs to the lower rings.
				}
				origin := r3.Add(lower, r3.Vec{
					X: float64(i) * size,
					Y: float64(j) * size,
					Z: float64(k) * size,
				})
				shell = append(shell, Chunk{Origin: origin, Size: size, Res: res})
			}
		}
	}
	if len(shell) != chunksPerRing {
		return nil, fmt.Errorf("shell built %d chunks, want %d", len(shell), chunksPerRing)
	}
	return shell, nil
}
