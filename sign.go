package sdfterrain

import (
	"math"
	"sort"
	"strconv"
)

// Sign is the asserted sign of a scalar field over some region and forms a
// four element lattice. SignUnknown is the top ("could be anything, sample
// directly") and SignUndefined the bottom ("no assertion possible").
// SignNegative and SignPositive are the well-behaved members: the field is
// known to be inside, respectively outside, the solid.
type Sign uint8

const (
	SignUnknown Sign = iota
	SignNegative
	SignPositive
	SignUndefined
)

// WellBehaved returns true for SignNegative and SignPositive.
func (a Sign) WellBehaved() bool { return a == SignNegative || a == SignPositive }

func (a Sign) String() string {
	switch a {
	case SignUnknown:
		return "unknown"
	case SignNegative:
		return "negative"
	case SignPositive:
		return "positive"
	case SignUndefined:
		return "undefined"
	}
	return "Sign(" + strconv.Itoa(int(a)) + ")"
}

// Union returns the sign of the union of two solids over the same region.
// Any negative region stays negative, two positive regions stay positive.
// Everything else loses the assertion.
func (a Sign) Union(b Sign) Sign {
	switch {
	case a == b:
		return a
	case a == SignNegative || b == SignNegative:
		return SignNegative
	case a == SignPositive && b == SignPositive:
		return SignPositive
	}
	return SignUnknown
}

// Difference returns the sign of the solid difference a - b over the same
// region. Subtracting a known-inside region empties it; subtracting a
// non-negative region is a no-op.
func (a Sign) Difference(b Sign) Sign {
	if b == SignNegative {
		return SignPositive
	}
	return a
}

// Intersect returns the sign of the intersection of two solids over the
// same region. A point is outside the intersection as soon as it is outside
// either operand.
func (a Sign) Intersect(b Sign) Sign {
	switch {
	case a == b:
		return a
	case a == SignPositive || b == SignPositive:
		return SignPositive
	}
	return SignUnknown
}

// SignBoundary asserts the field has Sign from coordinate Min (inclusive)
// up to the Min of the next boundary (exclusive).
type SignBoundary struct {
	Min  float64
	Sign Sign
}

// Less orders boundaries lexicographically by (Min, Sign).
func (b SignBoundary) Less(o SignBoundary) bool {
	if b.Min != o.Min {
		return b.Min < o.Min
	}
	return b.Sign < o.Sign
}

// SignInterval is one contiguous span [Left.Min, Right.Min) carrying
// Left.Sign. Right is the boundary that terminates the span.
type SignInterval struct {
	Left  SignBoundary
	Right SignBoundary
}

// Sign returns the sign asserted over the interval.
func (iv SignInterval) Sign() Sign { return iv.Left.Sign }

// Empty returns true if the interval covers no coordinates.
func (iv SignInterval) Empty() bool { return iv.Right.Min <= iv.Left.Min }

// Overlaps returns true if the two intervals share a non-empty span.
func (iv SignInterval) Overlaps(o SignInterval) bool {
	return iv.Left.Min < o.Right.Min && o.Left.Min < iv.Right.Min
}

// Union decomposes two intervals into at most three sub-intervals whose
// signs are the lattice union of the operands over the overlapping span.
func (iv SignInterval) Union(o SignInterval) []SignInterval {
	return decompose(iv, o, Sign.Union)
}

// Difference decomposes two intervals into at most three sub-intervals
// whose signs are the lattice difference iv - o over the overlapping span.
func (iv SignInterval) Difference(o SignInterval) []SignInterval {
	return decompose(iv, o, Sign.Difference)
}

// Intersect decomposes two intervals into at most three sub-intervals whose
// signs are the lattice intersection of the operands over the overlap.
func (iv SignInterval) Intersect(o SignInterval) []SignInterval {
	return decompose(iv, o, Sign.Intersect)
}

// decompose splits the joint extent of a and b at their boundary
// coordinates. Where only one operand covers a point the other side of the
// lattice operation is SignUnknown, which preserves the operation's laws
// without special cases.
func decompose(a, b SignInterval, op func(Sign, Sign) Sign) []SignInterval {
	cuts := [4]float64{a.Left.Min, a.Right.Min, b.Left.Min, b.Right.Min}
	sort.Float64s(cuts[:])
	signAt := func(x float64) Sign {
		sa, sb := SignUnknown, SignUnknown
		if x >= a.Left.Min && x < a.Right.Min {
			sa = a.Left.Sign
		}
		if x >= b.Left.Min && x < b.Right.Min {
			sb = b.Left.Sign
		}
		return op(sa, sb)
	}
	var out []SignInterval
	for i := 0; i < len(cuts)-1; i++ {
		left, right := cuts[i], cuts[i+1]
		if right <= left {
			continue
		}
		out = append(out, SignInterval{
			Left:  SignBoundary{Min: left, Sign: signAt(left)},
			Right: SignBoundary{Min: right, Sign: signAt(right)},
		})
	}
	return out
}

// SignIntervals is an ordered set of sign boundaries covering the whole
// real line. It always contains the canonical -Inf/unknown and
// +Inf/undefined sentinels, so iteration yields at least one interval and
// the sequence is contiguous, non-overlapping and gap free.
type SignIntervals struct {
	bs []SignBoundary
}

// NewSignIntervals returns the trivial interval set asserting nothing:
// a single unknown interval covering (-Inf, +Inf).
func NewSignIntervals() SignIntervals {
	return SignIntervals{bs: []SignBoundary{
		{Min: math.Inf(-1), Sign: SignUnknown},
		{Min: math.Inf(1), Sign: SignUndefined},
	}}
}

// InsertBoundary adds a sign fact at a coordinate. Inserting a boundary
// equal to an existing one is a no-op. A boundary inserted at -Inf takes
// precedence over the unknown lower sentinel: the caller is asserting a
// known sign for the entire lower ray, so iteration starts with that sign
// instead of Unknown.
func (s *SignIntervals) InsertBoundary(b SignBoundary) {
	if len(s.bs) == 0 {
		*s = NewSignIntervals()
	}
	i := sort.Search(len(s.bs), func(i int) bool { return !s.bs[i].Less(b) })
	if i < len(s.bs) && s.bs[i] == b {
		return
	}
	s.bs = append(s.bs, SignBoundary{})
	copy(s.bs[i+1:], s.bs[i:])
	s.bs[i] = b
}

// InsertInterval adds both boundaries of an interval fact: iv's sign from
// its left coordinate and iv.Right's own assertion from the right one.
func (s *SignIntervals) InsertInterval(iv SignInterval) {
	s.InsertBoundary(iv.Left)
	s.InsertBoundary(iv.Right)
}

// Intervals returns the minimal contiguous interval sequence covering
// (-Inf, +Inf). Empty spans are dropped and runs of equal sign merged.
func (s SignIntervals) Intervals() []SignInterval {
	bs := s.bs
	if len(bs) == 0 {
		bs = NewSignIntervals().bs
	}
	// Keep the last boundary of any group sharing a coordinate: it is the
	// most recent assertion and all earlier ones span nothing.
	kept := make([]SignBoundary, 0, len(bs))
	for i, b := range bs {
		if i+1 < len(bs) && bs[i+1].Min == b.Min {
			continue
		}
		if len(kept) > 0 && kept[len(kept)-1].Sign == b.Sign && i+1 < len(bs) {
			continue // same fact continues, boundary is redundant.
		}
		kept = append(kept, b)
	}
	out := make([]SignInterval, 0, len(kept)-1)
	for i := 0; i < len(kept)-1; i++ {
		out = append(out, SignInterval{Left: kept[i], Right: kept[i+1]})
	}
	return out
}

// signAt returns the asserted sign at coordinate x.
func (s SignIntervals) signAt(x float64) Sign {
	bs := s.bs
	if len(bs) == 0 {
		return SignUnknown
	}
	i := sort.Search(len(bs), func(i int) bool { return bs[i].Min > x })
	if i == 0 {
		return SignUnknown
	}
	return bs[i-1].Sign
}

// Combine merges two interval sets point-wise under a lattice operation.
// Every boundary of either operand becomes a cut in the result.
func Combine(a, b SignIntervals, op func(Sign, Sign) Sign) SignIntervals {
	if len(a.bs) == 0 {
		a = NewSignIntervals()
	}
	if len(b.bs) == 0 {
		b = NewSignIntervals()
	}
	cuts := make([]float64, 0, len(a.bs)+len(b.bs))
	for _, bd := range a.bs {
		cuts = append(cuts, bd.Min)
	}
	for _, bd := range b.bs {
		cuts = append(cuts, bd.Min)
	}
	sort.Float64s(cuts)
	out := SignIntervals{bs: make([]SignBoundary, 0, len(cuts))}
	prev := math.Inf(-1)
	for i, x := range cuts {
		if i > 0 && x == prev {
			continue
		}
		prev = x
		sign := op(a.signAt(x), b.signAt(x))
		if math.IsInf(x, 1) {
			sign = SignUndefined // closing sentinel always survives.
		}
		out.bs = append(out.bs, SignBoundary{Min: x, Sign: sign})
	}
	return out
}

// CombineUnion merges the sign assertions of a solid union.
func CombineUnion(a, b SignIntervals) SignIntervals { return Combine(a, b, Sign.Union) }

// CombineDifference merges the sign assertions of the solid difference a - b.
func CombineDifference(a, b SignIntervals) SignIntervals { return Combine(a, b, Sign.Difference) }

// CombineIntersect merges the sign assertions of a solid intersection.
func CombineIntersect(a, b SignIntervals) SignIntervals { return Combine(a, b, Sign.Intersect) }
