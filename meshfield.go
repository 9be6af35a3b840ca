package sdfterrain

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is a 3D triangle referenced by meshes fed back into fields.
type Triangle [3]r3.Vec

// Normal returns the unit normal of the triangle face.
func (t Triangle) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

var (
	_ SDF3             = meshField{}
	_ kdtree.Interface = kdMesh{}
	_ kdtree.Bounder   = kdMesh{}
)

// MeshField returns a field approximating the signed distance to a
// triangle mesh. Already-extracted chunk meshes can this way be composed
// back into terrain content. The sign is estimated from the nearest
// triangle's facing, so the mesh should be closed and outward wound.
// MeshField panics on an empty mesh.
func MeshField(model []Triangle) SDF3 {
	if len(model) == 0 {
		panic("empty mesh")
	}
	tris := make(kdMesh, len(model))
	for i := range tris {
		tris[i] = kdTri(model[i])
	}
	tree := kdtree.New(tris, true)
	return meshField{tree: *tree}
}

type meshField struct {
	tree kdtree.Tree
}

func (s meshField) Evaluate(v r3.Vec) float64 {
	const eps = 1e-3
	nearest := s.nearest(v)
	minDist := math.MaxFloat64
	closest := r3.Vec{}
	for i := 0; i < 3; i++ {
		d := r3.Norm(r3.Sub(v, nearest[i]))
		if d < minDist {
			closest = nearest[i]
			minDist = d
		}
	}
	if minDist < eps {
		return 0
	}
	pointDir := r3.Sub(v, closest)
	n := Triangle(nearest).Normal()
	alpha := math.Acos(r3.Cos(n, pointDir))
	return math.Copysign(minDist, math.Pi/2-alpha)
}

func (s meshField) Bounds() r3.Box {
	bb := s.tree.Root.Bounding
	if bb == nil {
		panic("kd tree has no bounding box")
	}
	tMin := bb.Min.(kdTri)
	tMax := bb.Max.(kdTri)
	return r3.Box{Min: tMin[0], Max: tMax[0]}
}

// nearest returns the triangle closest to point v by centroid distance.
func (s meshField) nearest(v r3.Vec) kdTri {
	got, _ := s.tree.Nearest(kdTri{v, v, v})
	return got.(kdTri)
}

type kdMesh []kdTri

type kdTri Triangle

func (k kdMesh) Index(i int) kdtree.Comparable { return k[i] }

func (k kdMesh) Len() int { return len(k) }

// Pivot partitions the list along the dimension specified.
func (k kdMesh) Pivot(d kdtree.Dim) int {
	p := kdMeshPlane{dim: int(d), tris: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (k kdMesh) Slice(start, end int) kdtree.Interface { return k[start:end] }

func (k kdMesh) Bounds() *kdtree.Bounding {
	min := r3.Vec{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	max := r3.Scale(-1, min)
	for _, tri := range k {
		for _, v := range tri {
			min = minElem(min, v)
			max = maxElem(max, v)
		}
	}
	return &kdtree.Bounding{
		Min: kdTri{min, min, min},
		Max: kdTri{max, max, max},
	}
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d, comparing centroids.
func (a kdTri) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdTriComp(a, b.(kdTri), int(d))
}

func (a kdTri) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between centroids.
func (a kdTri) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(kdTriCentroid(a), kdTriCentroid(b.(kdTri))))
}

func (a kdTri) Bounds() *kdtree.Bounding {
	min := minElem(a[2], minElem(a[0], a[1]))
	max := maxElem(a[2], maxElem(a[0], a[1]))
	return &kdtree.Bounding{
		Min: kdTri{min, min, min},
		Max: kdTri{max, max, max},
	}
}

func kdTriComp(a, b kdTri, dim int) (c float64) {
	switch dim {
	case 0:
		c = (a[0].X + a[1].X + a[2].X) - (b[0].X + b[1].X + b[2].X)
	case 1:
		c = (a[0].Y + a[1].Y + a[2].Y) - (b[0].Y + b[1].Y + b[2].Y)
	case 2:
		c = (a[0].Z + a[1].Z + a[2].Z) - (b[0].Z + b[1].Z + b[2].Z)
	}
	return c / 3
}

func kdTriCentroid(a kdTri) r3.Vec {
	v := r3.Add(a[0], r3.Add(a[1], a[2]))
	return r3.Scale(1./3., v)
}

type kdMeshPlane struct {
	dim  int
	tris kdMesh
}

func (p kdMeshPlane) Less(i, j int) bool {
	return kdTriComp(p.tris[i], p.tris[j], p.dim) < 0
}
func (p kdMeshPlane) Swap(i, j int) { p.tris[i], p.tris[j] = p.tris[j], p.tris[i] }
func (p kdMeshPlane) Len() int      { return len(p.tris) }
func (p kdMeshPlane) Slice(start, end int) kdtree.SortSlicer {
	p.tris = p.tris[start:end]
	return p
}

func minElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}
