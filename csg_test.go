package sdfterrain

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestUnion3D(t *testing.T) {
	a := Sphere(r3.Vec{X: -2}, 1)
	b := Sphere(r3.Vec{X: 2}, 1)
	u := Union3D(a, b)
	for _, p := range []r3.Vec{{}, {X: -2}, {X: 2}, {X: 5, Y: 1}} {
		want := math.Min(a.Evaluate(p), b.Evaluate(p))
		if got := u.Evaluate(p); got != want {
			t.Errorf("Evaluate(%v) = %v, want %v", p, got, want)
		}
	}
	bb, bounded := BoundsOf(u)
	if !bounded {
		t.Fatal("union of bounded members must be bounded")
	}
	if bb.Min.X != -3 || bb.Max.X != 3 {
		t.Errorf("union bounds %v", bb)
	}
	if _, unb := BoundsOf(Union3D(a, HalfSpace(0))); unb {
		t.Error("union with an unbounded member must be unbounded")
	}
}

func TestUnion3DPanics(t *testing.T) {
	for name, f := range map[string]func(){
		"short": func() { Union3D(HalfSpace(0)) },
		"nil":   func() { Union3D(HalfSpace(0), nil) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s argument list did not panic", name)
				}
			}()
			f()
		}()
	}
}

func TestUnionSignComposition(t *testing.T) {
	// Terrain plus a floating sphere: the column through both is
	// solid-air-solid-air from bottom to top.
	u := Union3D(HalfSpace(0), Sphere(r3.Vec{Y: 5}, 1))
	ivs := SignUniformOnY(u, 0, 0)
	var signs []Sign
	for _, iv := range ivs.Intervals() {
		signs = append(signs, iv.Sign())
	}
	want := []Sign{SignNegative, SignPositive, SignNegative, SignPositive}
	if len(signs) != len(want) {
		t.Fatalf("got signs %v, want %v", signs, want)
	}
	for i := range want {
		if signs[i] != want[i] {
			t.Fatalf("got signs %v, want %v", signs, want)
		}
	}
	// Solid spans where the assertion says so.
	for _, tc := range []struct {
		y   float64
		neg bool
	}{{-3, true}, {1, false}, {5, true}, {7, false}} {
		d := u.Evaluate(r3.Vec{Y: tc.y})
		if (d < 0) != tc.neg {
			t.Errorf("field at y=%v is %v, asserted negative=%v", tc.y, d, tc.neg)
		}
	}
}

func TestDifference3D(t *testing.T) {
	// Terrain with a spherical crater bitten out at the surface.
	d := Difference3D(HalfSpace(0), Sphere(r3.Vec{}, 2))
	if got := d.Evaluate(r3.Vec{Y: -1}); got < 0 {
		t.Errorf("crater interior is solid: %v", got)
	}
	if got := d.Evaluate(r3.Vec{Y: -5}); got >= 0 {
		t.Errorf("deep terrain is air: %v", got)
	}
	ivs := SignUniformOnY(d, 0, 0)
	if s := ivs.signAt(-1); s != SignPositive {
		t.Errorf("crater interior asserted %v, want positive", s)
	}
	if s := ivs.signAt(-5); s != SignNegative {
		t.Errorf("deep terrain asserted %v, want negative", s)
	}
}

func TestIntersect3D(t *testing.T) {
	a := Sphere(r3.Vec{X: -0.5}, 1)
	b := Sphere(r3.Vec{X: 0.5}, 1)
	i := Intersect3D(a, b)
	if got := i.Evaluate(r3.Vec{}); got >= 0 {
		t.Errorf("lens center is air: %v", got)
	}
	if got := i.Evaluate(r3.Vec{X: -1.2}); got < 0 {
		t.Errorf("point in only one operand is solid: %v", got)
	}
	if _, bounded := BoundsOf(i); !bounded {
		t.Error("intersection with a bounded operand must be bounded")
	}
}

func TestSmoothMinUnion(t *testing.T) {
	a := Sphere(r3.Vec{X: -1}, 1)
	b := Sphere(r3.Vec{X: 1}, 1)
	u := Union3D(a, b)
	u.(interface{ SetMin(MinFunc) }).SetMin(SmoothMin(0.5))
	// Midway between the spheres the smooth blend pulls the surface
	// closer than the hard minimum.
	p := r3.Vec{}
	hard := math.Min(a.Evaluate(p), b.Evaluate(p))
	if got := u.Evaluate(p); got >= hard {
		t.Errorf("smooth min %v not below hard min %v", got, hard)
	}
	// Far from the blend region both agree.
	p = r3.Vec{X: 10}
	if got, hard := u.Evaluate(p), math.Min(a.Evaluate(p), b.Evaluate(p)); math.Abs(got-hard) > 1e-9 {
		t.Errorf("smooth min %v differs from hard min %v far from the seam", got, hard)
	}
}

func TestTranslate3D(t *testing.T) {
	v := r3.Vec{X: 3, Y: -2, Z: 1}
	s := Translate3D(Sphere(r3.Vec{}, 1), v)
	if got := s.Evaluate(v); got != -1 {
		t.Errorf("translated center distance %v, want -1", got)
	}
	if got := OffsetOf(s); got != v {
		t.Errorf("Offset() = %v, want %v", got, v)
	}
	if got := OffsetOf(Translate3D(s, v)); got != r3.Scale(2, v) {
		t.Errorf("nested Offset() = %v, want %v", got, r3.Scale(2, v))
	}
	bb, bounded := BoundsOf(s)
	if !bounded || bb.Min != (r3.Vec{X: 2, Y: -3, Z: 0}) {
		t.Errorf("translated bounds %v", bb)
	}
}

func TestTranslate3DSigns(t *testing.T) {
	s := Translate3D(HalfSpace(0), r3.Vec{X: 10, Y: 5})
	ivs := SignUniformOnY(s, 10, 0)
	if got := ivs.signAt(4); got != SignNegative {
		t.Errorf("below shifted surface asserted %v, want negative", got)
	}
	if got := ivs.signAt(6); got != SignPositive {
		t.Errorf("above shifted surface asserted %v, want positive", got)
	}
	if got := ivs.signAt(math.Inf(-1) + 0); got != SignNegative {
		t.Errorf("far below asserted %v, want negative", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("clamp broken")
	}
}
