package sdfterrain

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// halfSpace is the solid below a horizontal plane.
type halfSpace struct {
	height float64
}

// HalfSpace returns the flat terrain solid occupying all space below
// y = height. It carries exact column sign assertions: the only voxels a
// sampler must evaluate directly are those near the plane.
func HalfSpace(height float64) SDF3 {
	return halfSpace{height: height}
}

func (s halfSpace) Evaluate(p r3.Vec) float64 {
	return p.Y - s.height
}

func (s halfSpace) SignUniformOnY(x, z float64) SignIntervals {
	ivs := NewSignIntervals()
	ivs.InsertBoundary(SignBoundary{Min: math.Inf(-1), Sign: SignNegative})
	ivs.InsertBoundary(SignBoundary{Min: s.height, Sign: SignPositive})
	return ivs
}

// sphere is a solid sphere.
type sphere struct {
	center r3.Vec
	radius float64
}

// Sphere returns a solid sphere of given center and radius.
// Sphere panics on a non-positive radius.
func Sphere(center r3.Vec, radius float64) SDF3 {
	if radius <= 0 {
		panic("sphere radius must be positive")
	}
	return sphere{center: center, radius: radius}
}

func (s sphere) Evaluate(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, s.center)) - s.radius
}

func (s sphere) Bounds() r3.Box {
	h := r3.Vec{X: s.radius, Y: s.radius, Z: s.radius}
	return r3.Box{Min: r3.Sub(s.center, h), Max: r3.Add(s.center, h)}
}

// SignUniformOnY intersects the vertical line at (x, z) with the sphere.
// Columns missing the sphere are positive everywhere; columns through it
// are negative strictly between the two crossing heights.
func (s sphere) SignUniformOnY(x, z float64) SignIntervals {
	ivs := NewSignIntervals()
	dx, dz := x-s.center.X, z-s.center.Z
	d2 := dx*dx + dz*dz
	r2 := s.radius * s.radius
	if d2 >= r2 {
		ivs.InsertBoundary(SignBoundary{Min: math.Inf(-1), Sign: SignPositive})
		return ivs
	}
	half := math.Sqrt(r2 - d2)
	ivs.InsertBoundary(SignBoundary{Min: math.Inf(-1), Sign: SignPositive})
	ivs.InsertBoundary(SignBoundary{Min: s.center.Y - half, Sign: SignNegative})
	ivs.InsertBoundary(SignBoundary{Min: s.center.Y + half, Sign: SignPositive})
	return ivs
}

// box is a solid axis-aligned box.
type box struct {
	center r3.Vec
	half   r3.Vec
}

// Box returns a solid axis-aligned box of given center and full size.
// Box carries no column sign assertion, exercising the direct sampling
// path, and panics on non-positive size components.
func Box(center, size r3.Vec) SDF3 {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		panic("box size components must be positive")
	}
	return box{center: center, half: r3.Scale(0.5, size)}
}

func (s box) Evaluate(p r3.Vec) float64 {
	q := r3.Sub(p, s.center)
	d := r3.Vec{
		X: math.Abs(q.X) - s.half.X,
		Y: math.Abs(q.Y) - s.half.Y,
		Z: math.Abs(q.Z) - s.half.Z,
	}
	outside := r3.Vec{
		X: math.Max(d.X, 0),
		Y: math.Max(d.Y, 0),
		Z: math.Max(d.Z, 0),
	}
	inside := math.Min(math.Max(d.X, math.Max(d.Y, d.Z)), 0)
	return r3.Norm(outside) + inside
}

func (s box) Bounds() r3.Box {
	return r3.Box{Min: r3.Sub(s.center, s.half), Max: r3.Add(s.center, s.half)}
}

// HeightFunc maps ground-plane coordinates to terrain height.
type HeightFunc func(x, z float64) float64

// heightField is terrain bounded above by a height function.
type heightField struct {
	height HeightFunc
}

// HeightField returns the terrain solid below the given height function.
// The distance returned along a column is exact; laterally it is only a
// bound, which is sufficient for surface extraction at terrain slopes.
// The column sign assertion splits at the exact surface height.
func HeightField(height HeightFunc) SDF3 {
	if height == nil {
		panic("nil height function")
	}
	return heightField{height: height}
}

func (s heightField) Evaluate(p r3.Vec) float64 {
	return p.Y - s.height(p.X, p.Z)
}

func (s heightField) SignUniformOnY(x, z float64) SignIntervals {
	h := s.height(x, z)
	ivs := NewSignIntervals()
	ivs.InsertBoundary(SignBoundary{Min: math.Inf(-1), Sign: SignNegative})
	ivs.InsertBoundary(SignBoundary{Min: h, Sign: SignPositive})
	return ivs
}
