// Package sdfterrain meshes signed distance fields as streamed terrain.
//
// The package root defines the field capability interfaces and the
// sign-interval algebra used to skip field evaluation over spans of
// provably uniform sign. Chunked level-of-detail geometry lives in
// package cascade, voxel sampling and marching cubes in package mesher,
// and the per-update load/unload orchestration in package stream.
package sdfterrain

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SDF3 is the interface to a 3d signed distance field.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the field surface to the point.
	// The distance is negative if the point is inside the solid.
	Evaluate(p r3.Vec) float64
}

// Bounder is implemented by fields with a finite extent.
// Fields that do not implement Bounder are treated as unbounded.
type Bounder interface {
	Bounds() r3.Box
}

// YSigner is implemented by fields able to cheaply assert the sign of the
// field along a vertical (Y) line through (x, z). The returned intervals
// let samplers replace per-voxel evaluation with boundary-only sampling.
type YSigner interface {
	SignUniformOnY(x, z float64) SignIntervals
}

// Offsetter is implemented by fields that declare a global translation to
// be applied to render output generated from them.
type Offsetter interface {
	Offset() r3.Vec
}

// BoundsOf returns the bounding box of s and whether s is bounded at all.
func BoundsOf(s SDF3) (bb r3.Box, bounded bool) {
	if b, ok := s.(Bounder); ok {
		return b.Bounds(), true
	}
	inf := math.Inf(1)
	return r3.Box{
		Min: r3.Vec{X: -inf, Y: -inf, Z: -inf},
		Max: r3.Vec{X: inf, Y: inf, Z: inf},
	}, false
}

// SignUniformOnY queries the Y-sign hint of s at column (x, z). Fields
// without the YSigner capability yield the trivial Unknown-everywhere
// answer, which forces direct sampling and is always correct.
func SignUniformOnY(s SDF3, x, z float64) SignIntervals {
	if ys, ok := s.(YSigner); ok {
		return ys.SignUniformOnY(x, z)
	}
	return NewSignIntervals()
}

// OffsetOf returns the global render offset declared by s, if any.
func OffsetOf(s SDF3) r3.Vec {
	if o, ok := s.(Offsetter); ok {
		return o.Offset()
	}
	return r3.Vec{}
}
