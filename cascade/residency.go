package cascade

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Residency is the set of chunk origins that currently have a live mesh.
// Keys match by exact bit pattern; callers apply any world wrapping with
// Wrap before calling. Residency is owned by a single coordinating
// goroutine and needs no locking.
type Residency struct {
	loaded map[r3.Vec]struct{}
}

// NewResidency returns an empty residency set.
func NewResidency() *Residency {
	return &Residency{loaded: make(map[r3.Vec]struct{})}
}

// IsLoaded reports whether origin has a live mesh.
func (r *Residency) IsLoaded(origin r3.Vec) bool {
	_, ok := r.loaded[origin]
	return ok
}

// MarkLoaded records origin as having a live mesh.
func (r *Residency) MarkLoaded(origin r3.Vec) {
	r.loaded[origin] = struct{}{}
}

// MarkUnloaded removes origin from the set.
func (r *Residency) MarkUnloaded(origin r3.Vec) {
	delete(r.loaded, origin)
}

// Len returns the number of loaded origins.
func (r *Residency) Len() int { return len(r.loaded) }

// Wrap folds a point into the toroidal world [0, worldSize) per axis.
// A non-positive worldSize disables wrapping and returns p unchanged.
func Wrap(p r3.Vec, worldSize float64) r3.Vec {
	if worldSize <= 0 {
		return p
	}
	return r3.Vec{
		X: wrap1(p.X, worldSize),
		Y: wrap1(p.Y, worldSize),
		Z: wrap1(p.Z, worldSize),
	}
}

func wrap1(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}
