package sdfterrain

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// cubeMesh builds the 12-triangle surface of the cube [-1,1]^3 with
// outward winding.
func cubeMesh() []Triangle {
	quad := func(a, b, c, d r3.Vec) [2]Triangle {
		return [2]Triangle{{a, b, c}, {a, c, d}}
	}
	v := func(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }
	faces := [][2]Triangle{
		quad(v(1, -1, -1), v(1, 1, -1), v(1, 1, 1), v(1, -1, 1)),     // +X
		quad(v(-1, -1, -1), v(-1, -1, 1), v(-1, 1, 1), v(-1, 1, -1)), // -X
		quad(v(-1, 1, -1), v(-1, 1, 1), v(1, 1, 1), v(1, 1, -1)),     // +Y
		quad(v(-1, -1, -1), v(1, -1, -1), v(1, -1, 1), v(-1, -1, 1)), // -Y
		quad(v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1)),     // +Z
		quad(v(-1, -1, -1), v(-1, 1, -1), v(1, 1, -1), v(1, -1, -1)), // -Z
	}
	var model []Triangle
	for _, f := range faces {
		model = append(model, f[0], f[1])
	}
	return model
}

func TestTriangleNormal(t *testing.T) {
	tri := Triangle{{}, {X: 1}, {Y: 1}}
	if n := tri.Normal(); n != (r3.Vec{Z: 1}) {
		t.Errorf("normal %v, want +Z", n)
	}
}

func TestCubeMeshWinding(t *testing.T) {
	for i, tri := range cubeMesh() {
		c := r3.Scale(1./3., r3.Add(tri[0], r3.Add(tri[1], tri[2])))
		if r3.Dot(tri.Normal(), c) <= 0 {
			t.Errorf("triangle %d normal points inward", i)
		}
	}
}

func TestMeshFieldSigns(t *testing.T) {
	s := MeshField(cubeMesh())
	inside := []r3.Vec{{}, {X: 0.5, Y: 0.5, Z: 0.5}, {Y: -0.7}}
	for _, p := range inside {
		if d := s.Evaluate(p); d >= 0 {
			t.Errorf("Evaluate(%v) = %v, want negative", p, d)
		}
	}
	outside := []r3.Vec{{X: 3}, {Y: -4, Z: 1}, {X: 2, Y: 2, Z: 2}}
	for _, p := range outside {
		if d := s.Evaluate(p); d <= 0 {
			t.Errorf("Evaluate(%v) = %v, want positive", p, d)
		}
	}
}

func TestMeshFieldDistanceScale(t *testing.T) {
	// Vertex-based distance is approximate but must stay within one
	// triangle diagonal of the true distance.
	s := MeshField(cubeMesh())
	p := r3.Vec{X: 5}
	d := s.Evaluate(p)
	if d < 4 || d > 4+2*math.Sqrt2 {
		t.Errorf("Evaluate(%v) = %v, want within [4, %v]", p, d, 4+2*math.Sqrt2)
	}
}

func TestMeshFieldBounds(t *testing.T) {
	bb, bounded := BoundsOf(MeshField(cubeMesh()))
	if !bounded {
		t.Fatal("mesh field must report bounds")
	}
	want := r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}
	if bb != want {
		t.Errorf("bounds %v, want %v", bb, want)
	}
}

func TestMeshFieldEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("empty mesh did not panic")
		}
	}()
	MeshField(nil)
}
