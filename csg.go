package sdfterrain

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinFunc is a minimum functions for SDF blending.
type MinFunc func(a, b float64) float64

// MaxFunc is a maximum functions for SDF blending.
type MaxFunc func(a, b float64) float64

// SmoothMin returns a MinFunc that blends surfaces over radius k.
// See https://iquilezles.org/articles/smin/ (polynomial smooth min).
func SmoothMin(k float64) MinFunc {
	return func(a, b float64) float64 {
		h := Clamp(0.5+0.5*(b-a)/k, 0, 1)
		return b*(1-h) + a*h - k*h*(1-h)
	}
}

// Clamp x between a and b, assume a <= b.
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// union3 is a union of SDF3s.
type union3 struct {
	sdf []SDF3
	min MinFunc
}

// Union3D returns the union of multiple SDF3 objects. The union composes
// the children's Y-sign assertions and bounds where available.
// Union3D will panic if the argument list is shorter than 2 or if an
// argument SDF3 is nil.
func Union3D(sdf ...SDF3) SDF3 {
	if len(sdf) < 2 {
		panic("union requires at least 2 sdfs")
	}
	for i, x := range sdf {
		if x == nil {
			panic("nil sdf argument (" + strconv.Itoa(i) + ") to Union3D")
		}
	}
	return &union3{sdf: sdf, min: math.Min}
}

// Evaluate returns the minimum distance to an SDF3 union.
func (s *union3) Evaluate(p r3.Vec) float64 {
	var d float64
	for i, x := range s.sdf {
		if i == 0 {
			d = x.Evaluate(p)
		} else {
			d = s.min(d, x.Evaluate(p))
		}
	}
	return d
}

// SetMin sets the minimum function to control blending.
func (s *union3) SetMin(min MinFunc) { s.min = min }

// Bounds returns the bounding box of an SDF3 union. The union is bounded
// only if every member is; an unbounded member yields an infinite box.
func (s *union3) Bounds() r3.Box {
	bb, ok := BoundsOf(s.sdf[0])
	if !ok {
		return bb
	}
	for _, x := range s.sdf[1:] {
		xb, ok := BoundsOf(x)
		if !ok {
			return xb
		}
		bb = extendBox(bb, xb)
	}
	return bb
}

// SignUniformOnY combines the members' column sign assertions under the
// sign lattice union.
func (s *union3) SignUniformOnY(x, z float64) SignIntervals {
	acc := SignUniformOnY(s.sdf[0], x, z)
	for _, m := range s.sdf[1:] {
		acc = CombineUnion(acc, SignUniformOnY(m, x, z))
	}
	return acc
}

// diff3 is the difference of two SDF3s, s0 - s1.
type diff3 struct {
	s0  SDF3
	s1  SDF3
	max MaxFunc
}

// Difference3D returns the difference of two SDF3s, s0 - s1.
// Difference3D will panic if any of the arguments is nil.
func Difference3D(s0, s1 SDF3) SDF3 {
	if s0 == nil || s1 == nil {
		panic("nil argument to Difference3D")
	}
	return &diff3{s0: s0, s1: s1, max: math.Max}
}

// Evaluate returns the minimum distance to the SDF3 difference.
func (s *diff3) Evaluate(p r3.Vec) float64 {
	return s.max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// SetMax sets the maximum function to control blending.
func (s *diff3) SetMax(max MaxFunc) { s.max = max }

// Bounds returns the bounding box of the SDF3 difference, which is the
// bounding box of the minuend.
func (s *diff3) Bounds() r3.Box {
	bb, _ := BoundsOf(s.s0)
	return bb
}

// SignUniformOnY combines the operands' column sign assertions under the
// sign lattice difference.
func (s *diff3) SignUniformOnY(x, z float64) SignIntervals {
	return CombineDifference(SignUniformOnY(s.s0, x, z), SignUniformOnY(s.s1, x, z))
}

// intersect3 is the intersection of two SDF3s.
type intersect3 struct {
	s0  SDF3
	s1  SDF3
	max MaxFunc
}

// Intersect3D returns the intersection of two SDF3s.
// Intersect3D will panic if any of the arguments is nil.
func Intersect3D(s0, s1 SDF3) SDF3 {
	if s0 == nil || s1 == nil {
		panic("nil argument to Intersect3D")
	}
	return &intersect3{s0: s0, s1: s1, max: math.Max}
}

// Evaluate returns the minimum distance to the SDF3 intersection.
func (s *intersect3) Evaluate(p r3.Vec) float64 {
	return s.max(s.s0.Evaluate(p), s.s1.Evaluate(p))
}

// SetMax sets the maximum function to control blending.
func (s *intersect3) SetMax(max MaxFunc) { s.max = max }

// Bounds returns a bounding box of the SDF3 intersection. The box of
// either bounded operand contains the intersection.
func (s *intersect3) Bounds() r3.Box {
	if bb, ok := BoundsOf(s.s0); ok {
		return bb
	}
	bb, _ := BoundsOf(s.s1)
	return bb
}

// SignUniformOnY combines the operands' column sign assertions under the
// sign lattice intersection.
func (s *intersect3) SignUniformOnY(x, z float64) SignIntervals {
	return CombineIntersect(SignUniformOnY(s.s0, x, z), SignUniformOnY(s.s1, x, z))
}

// Translate3D returns s moved by v. The translation is also reported
// through the Offset capability so render output is placed accordingly.
func Translate3D(s SDF3, v r3.Vec) SDF3 {
	if s == nil {
		panic("nil argument to Translate3D")
	}
	return &translate3{sdf: s, v: v}
}

type translate3 struct {
	sdf SDF3
	v   r3.Vec
}

func (s *translate3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(r3.Sub(p, s.v))
}

func (s *translate3) Bounds() r3.Box {
	bb, ok := BoundsOf(s.sdf)
	if !ok {
		return bb
	}
	return r3.Box{Min: r3.Add(bb.Min, s.v), Max: r3.Add(bb.Max, s.v)}
}

func (s *translate3) Offset() r3.Vec {
	return r3.Add(OffsetOf(s.sdf), s.v)
}

// SignUniformOnY shifts the column query into the inner field's frame.
// The Y component of the translation shifts every boundary coordinate.
func (s *translate3) SignUniformOnY(x, z float64) SignIntervals {
	inner := SignUniformOnY(s.sdf, x-s.v.X, z-s.v.Z)
	if s.v.Y == 0 {
		return inner
	}
	out := NewSignIntervals()
	for _, iv := range inner.Intervals() {
		b := iv.Left
		if !math.IsInf(b.Min, 0) {
			b.Min += s.v.Y // sentinels stay put.
		}
		out.InsertBoundary(b)
	}
	return out
}

func extendBox(a, b r3.Box) r3.Box {
	return r3.Box{
		Min: r3.Vec{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: r3.Vec{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}
