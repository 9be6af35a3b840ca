package mesher

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// mcCornerOffsets places corner i of a unit cube in table order.
var mcCornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// meshBuffer accumulates vertices and indices for a span of cubes.
// Buffers from different spans are merged sequentially with an index
// offset, so spans never share vertices.
type meshBuffer struct {
	positions []float32
	normals   []float32
	uvs       []float32
	indices   []uint32
}

// addVertex emits one vertex and returns its index within the buffer.
func (b *meshBuffer) addVertex(pos, normal r3.Vec, u, v float64) uint32 {
	idx := uint32(len(b.positions) / 3)
	b.positions = append(b.positions, float32(pos.X), float32(pos.Y), float32(pos.Z))
	b.normals = append(b.normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
	b.uvs = append(b.uvs, float32(u), float32(v))
	return idx
}

// marchCube classifies the unit cube at voxel (x, y, z) and appends its
// crossing triangles to the buffer. Vertices are deduplicated only
// within this cube's 12 edges via the edge cache; adjacent cubes emit
// their own copies of shared-edge vertices.
func marchCube(g *Grid, x, y, z int, buf *meshBuffer) {
	var values [8]float64
	index := 0
	for i, off := range mcCornerOffsets {
		v := g.At(x+off[0], y+off[1], z+off[2])
		values[i] = v
		if v < 0 {
			index |= 1 << i
		}
	}
	if index == 0 || index == 255 {
		return // cube is entirely inside or outside the surface.
	}
	tri := mcTriangleTable[index]

	var cache [12]int32
	for i := range cache {
		cache[i] = -1
	}
	for _, e := range tri {
		if cache[e] >= 0 {
			buf.indices = append(buf.indices, uint32(cache[e]))
			continue
		}
		idx := emitEdgeVertex(g, x, y, z, e, values, buf)
		cache[e] = int32(idx)
		buf.indices = append(buf.indices, idx)
	}
}

// emitEdgeVertex interpolates the surface crossing along cube edge e and
// emits the vertex with its gradient normal and planar UV.
func emitEdgeVertex(g *Grid, x, y, z, e int, values [8]float64, buf *meshBuffer) uint32 {
	c0, c1 := mcEdgeCorners[e][0], mcEdgeCorners[e][1]
	v0, v1 := values[c0], values[c1]
	t := 0.5
	if d := v0 - v1; d != 0 {
		t = v0 / d
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	o0, o1 := mcCornerOffsets[c0], mcCornerOffsets[c1]
	p0 := g.Local(x+o0[0], y+o0[1], z+o0[2])
	p1 := g.Local(x+o1[0], y+o1[1], z+o1[2])
	pos := lerp(p0, p1, t)

	n0 := g.Gradient(x+o0[0], y+o0[1], z+o0[2])
	n1 := g.Gradient(x+o1[0], y+o1[1], z+o1[2])
	normal := safeUnit(lerp(n0, n1, t))

	size := g.chunk.Size
	return buf.addVertex(pos, normal, pos.X/size, pos.Z/size)
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// safeUnit normalizes v, falling back to +Y on a degenerate gradient.
func safeUnit(v r3.Vec) r3.Vec {
	n2 := r3.Norm2(v)
	if n2 < 1e-18 {
		return r3.Vec{Y: 1}
	}
	return r3.Scale(1/math.Sqrt(n2), v)
}
