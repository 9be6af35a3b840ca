package mesher

import (
	"github.com/alitto/pond/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/sdfterrain"
	"github.com/soypat/sdfterrain/cascade"
)

// Mesh is the render-ready triangle output of one chunk. Positions are
// local to the chunk origin. Vertices are shared only within single
// marching cubes, never across cube or chunk boundaries, so sub-voxel
// seams between neighbors are expected and accepted.
type Mesh struct {
	Positions []float32 // xyz triplets
	Normals   []float32 // xyz triplets, unit length
	UVs       []float32 // planar X/Z tiling over the chunk
	Indices   []uint32
}

// Empty reports whether the mesh has nothing to render. An empty mesh is
// a valid result for a chunk with no surface crossing, not an error.
func (m *Mesh) Empty() bool { return len(m.Indices) == 0 }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Triangles assembles world-space triangles by offsetting local
// positions with the chunk origin, for STL dumps or mesh-backed fields.
func (m *Mesh) Triangles(origin r3.Vec) []sdfterrain.Triangle {
	out := make([]sdfterrain.Triangle, 0, m.TriangleCount())
	vertex := func(i uint32) r3.Vec {
		return r3.Vec{
			X: origin.X + float64(m.Positions[3*i]),
			Y: origin.Y + float64(m.Positions[3*i+1]),
			Z: origin.Z + float64(m.Positions[3*i+2]),
		}
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		out = append(out, sdfterrain.Triangle{
			vertex(m.Indices[i]), vertex(m.Indices[i+1]), vertex(m.Indices[i+2]),
		})
	}
	return out
}

// Extract runs marching cubes over the grid and returns the chunk mesh.
// Cube spans are processed in parallel on pool (sequentially when pool
// is nil); the grid is only read. Span buffers are merged in Z order so
// output is deterministic regardless of scheduling.
func Extract(g *Grid, pool pond.Pool) *Mesh {
	if !g.HasSurface() {
		return &Mesh{}
	}
	res := g.Res()
	bufs := make([]meshBuffer, res)
	extractSlab := func(z int) {
		buf := &bufs[z]
		for y := 0; y < res; y++ {
			for x := 0; x < res; x++ {
				marchCube(g, x, y, z, buf)
			}
		}
	}
	if pool == nil {
		for z := 0; z < res; z++ {
			extractSlab(z)
		}
	} else {
		group := pool.NewGroup()
		for z := 0; z < res; z++ {
			z := z
			group.Submit(func() { extractSlab(z) })
		}
		group.Wait()
	}
	return mergeBuffers(bufs)
}

// mergeBuffers concatenates span buffers, rebasing indices by each
// span's vertex offset.
func mergeBuffers(bufs []meshBuffer) *Mesh {
	var nv, ni int
	for i := range bufs {
		nv += len(bufs[i].positions)
		ni += len(bufs[i].indices)
	}
	m := &Mesh{
		Positions: make([]float32, 0, nv),
		Normals:   make([]float32, 0, nv),
		UVs:       make([]float32, 0, nv/3*2),
		Indices:   make([]uint32, 0, ni),
	}
	for i := range bufs {
		offset := uint32(len(m.Positions) / 3)
		m.Positions = append(m.Positions, bufs[i].positions...)
		m.Normals = append(m.Normals, bufs[i].normals...)
		m.UVs = append(m.UVs, bufs[i].uvs...)
		for _, idx := range bufs[i].indices {
			m.Indices = append(m.Indices, idx+offset)
		}
	}
	return m
}

// Mesher generates chunk meshes from a field: sparse sampling followed
// by extraction, both fanned out on the same pool.
type Mesher struct {
	sampler *Sampler
	pool    pond.Pool
}

// NewMesher returns a mesher running on pool. A nil pool runs every
// stage on the calling goroutine.
func NewMesher(pool pond.Pool) *Mesher {
	return &Mesher{sampler: NewSampler(pool), pool: pool}
}

// Generate samples the field over the chunk and extracts its mesh.
// Sampling fully completes before extraction starts; the grid is
// discarded afterwards.
func (m *Mesher) Generate(chunk cascade.Chunk, field sdfterrain.SDF3) *Mesh {
	g := m.sampler.Sample(chunk, field)
	return Extract(g, m.pool)
}
