package sdfterrain

import (
	sdfx "github.com/deadsy/sdfx/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// sdfxField adapts a github.com/deadsy/sdfx solid to the SDF3 capability
// so CAD-modelled shapes can be composed into terrain content.
type sdfxField struct {
	s sdfx.SDF3
}

// FromSDFX wraps a deadsy/sdfx solid as an SDF3.
// FromSDFX panics if the argument is nil.
func FromSDFX(s sdfx.SDF3) SDF3 {
	if s == nil {
		panic("nil sdfx solid")
	}
	return sdfxField{s: s}
}

func (f sdfxField) Evaluate(p r3.Vec) float64 {
	return f.s.Evaluate(sdfx.V3{X: p.X, Y: p.Y, Z: p.Z})
}

func (f sdfxField) Bounds() r3.Box {
	bb := f.s.BoundingBox()
	return r3.Box{
		Min: r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		Max: r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	}
}
