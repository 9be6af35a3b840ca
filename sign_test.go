package sdfterrain

import (
	"math"
	"math/rand"
	"testing"
)

var allSigns = []Sign{SignUnknown, SignNegative, SignPositive, SignUndefined}

func TestSignUnionLaws(t *testing.T) {
	for _, a := range allSigns {
		if got := a.Union(a); got != a {
			t.Errorf("union not idempotent: %v ∪ %v = %v", a, a, got)
		}
		for _, b := range allSigns {
			if a.Union(b) != b.Union(a) {
				t.Errorf("union not commutative for %v, %v", a, b)
			}
		}
	}
	if SignNegative.Union(SignPositive) != SignNegative {
		t.Error("negative must dominate union")
	}
	if SignPositive.Union(SignPositive) != SignPositive {
		t.Error("positive union positive must stay positive")
	}
	if SignUnknown.Union(SignPositive) != SignUnknown {
		t.Error("unknown union positive must stay unknown")
	}
}

func TestSignDifferenceLaws(t *testing.T) {
	for _, a := range allSigns {
		if got := a.Difference(SignNegative); got != SignPositive {
			t.Errorf("%v - negative = %v, want positive", a, got)
		}
		if got := a.Difference(SignPositive); got != a {
			t.Errorf("%v - positive = %v, want %v unchanged", a, got, a)
		}
		if got := a.Difference(SignUnknown); got != a {
			t.Errorf("%v - unknown = %v, want %v unchanged", a, got, a)
		}
	}
}

func TestSignIntersectLaws(t *testing.T) {
	for _, a := range allSigns {
		if got := a.Intersect(a); got != a {
			t.Errorf("intersect not idempotent for %v", a)
		}
		for _, b := range allSigns {
			if a.Intersect(b) != b.Intersect(a) {
				t.Errorf("intersect not commutative for %v, %v", a, b)
			}
		}
	}
	if SignNegative.Intersect(SignPositive) != SignPositive {
		t.Error("positive must dominate intersection")
	}
	if SignNegative.Intersect(SignNegative) != SignNegative {
		t.Error("negative intersect negative must stay negative")
	}
}

// checkTotal verifies the interval sequence covers (-Inf, +Inf) with no
// gaps, overlaps or empty interior spans.
func checkTotal(t *testing.T, ivs []SignInterval) {
	t.Helper()
	if len(ivs) == 0 {
		t.Fatal("interval sequence is empty")
	}
	first, last := ivs[0], ivs[len(ivs)-1]
	if !math.IsInf(first.Left.Min, -1) || first.Left.Sign != SignUnknown {
		t.Fatalf("sequence must start at -Inf/unknown, got %+v", first.Left)
	}
	if !math.IsInf(last.Right.Min, 1) || last.Right.Sign != SignUndefined {
		t.Fatalf("sequence must end at +Inf/undefined, got %+v", last.Right)
	}
	for i, iv := range ivs {
		if iv.Empty() {
			t.Errorf("interval %d empty: %+v", i, iv)
		}
		if i > 0 && ivs[i-1].Right != iv.Left {
			t.Errorf("gap or overlap between interval %d and %d", i-1, i)
		}
	}
}

func TestSignIntervalsTotality(t *testing.T) {
	var s SignIntervals
	checkTotal(t, s.Intervals()) // zero value behaves as the trivial set.

	s = NewSignIntervals()
	checkTotal(t, s.Intervals())
	if n := len(s.Intervals()); n != 1 {
		t.Fatalf("trivial set must have exactly 1 interval, got %d", n)
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 100; trial++ {
		s := NewSignIntervals()
		n := rng.Intn(12)
		for i := 0; i < n; i++ {
			s.InsertBoundary(SignBoundary{
				Min:  float64(rng.Intn(20)) - 10,
				Sign: allSigns[rng.Intn(len(allSigns))],
			})
		}
		checkTotal(t, s.Intervals())
	}
}

func TestSignIntervalsInsert(t *testing.T) {
	s := NewSignIntervals()
	s.InsertBoundary(SignBoundary{Min: 0, Sign: SignNegative})
	s.InsertBoundary(SignBoundary{Min: 5, Sign: SignPositive})
	s.InsertBoundary(SignBoundary{Min: 5, Sign: SignPositive}) // duplicate no-op
	ivs := s.Intervals()
	if len(ivs) != 3 {
		t.Fatalf("want 3 intervals, got %d: %+v", len(ivs), ivs)
	}
	if ivs[1].Sign() != SignNegative || ivs[1].Left.Min != 0 || ivs[1].Right.Min != 5 {
		t.Errorf("middle interval wrong: %+v", ivs[1])
	}
	if ivs[2].Sign() != SignPositive {
		t.Errorf("tail interval wrong: %+v", ivs[2])
	}
}

func TestSignIntervalsLowerRayFact(t *testing.T) {
	// A boundary inserted at -Inf overrides the unknown lower sentinel:
	// the caller asserts a known sign for the whole lower ray, the way a
	// bottomless solid's column hint does.
	s := NewSignIntervals()
	s.InsertBoundary(SignBoundary{Min: math.Inf(-1), Sign: SignNegative})
	s.InsertBoundary(SignBoundary{Min: 2, Sign: SignPositive})
	ivs := s.Intervals()
	if len(ivs) != 2 {
		t.Fatalf("want 2 intervals, got %d: %+v", len(ivs), ivs)
	}
	first := ivs[0]
	if !math.IsInf(first.Left.Min, -1) || first.Sign() != SignNegative {
		t.Errorf("lower ray interval wrong: %+v", first)
	}
	if got := s.signAt(math.Inf(-1)); got != SignNegative {
		t.Errorf("lower ray sign %v, want negative", got)
	}
}

func TestSignIntervalsMergesEqualSigns(t *testing.T) {
	s := NewSignIntervals()
	s.InsertBoundary(SignBoundary{Min: 1, Sign: SignNegative})
	s.InsertBoundary(SignBoundary{Min: 2, Sign: SignNegative})
	s.InsertBoundary(SignBoundary{Min: 3, Sign: SignNegative})
	ivs := s.Intervals()
	if len(ivs) != 2 {
		t.Fatalf("equal-sign runs must merge, got %d intervals: %+v", len(ivs), ivs)
	}
	if ivs[1].Left.Min != 1 || !math.IsInf(ivs[1].Right.Min, 1) {
		t.Errorf("merged interval wrong: %+v", ivs[1])
	}
}

func TestSignIntervalDecompose(t *testing.T) {
	a := SignInterval{
		Left:  SignBoundary{Min: 0, Sign: SignNegative},
		Right: SignBoundary{Min: 10, Sign: SignUnknown},
	}
	b := SignInterval{
		Left:  SignBoundary{Min: 5, Sign: SignPositive},
		Right: SignBoundary{Min: 15, Sign: SignUnknown},
	}
	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatal("intervals must overlap")
	}
	got := a.Union(b)
	if len(got) != 3 {
		t.Fatalf("want 3 sub-intervals, got %d: %+v", len(got), got)
	}
	// before: a alone, overlap: union, after: b alone (unknown other side).
	if got[0].Sign() != SignNegative.Union(SignUnknown) {
		t.Errorf("before span sign: %v", got[0].Sign())
	}
	if got[1].Sign() != SignNegative.Union(SignPositive) {
		t.Errorf("overlap span sign: %v", got[1].Sign())
	}
	if got[2].Sign() != SignPositive.Union(SignUnknown) {
		t.Errorf("after span sign: %v", got[2].Sign())
	}

	disjoint := SignInterval{
		Left:  SignBoundary{Min: 20, Sign: SignPositive},
		Right: SignBoundary{Min: 30, Sign: SignUnknown},
	}
	if a.Overlaps(disjoint) {
		t.Error("disjoint intervals must not overlap")
	}
}

func TestCombineUnion(t *testing.T) {
	a := NewSignIntervals()
	a.InsertBoundary(SignBoundary{Min: 0, Sign: SignNegative})
	a.InsertBoundary(SignBoundary{Min: 10, Sign: SignPositive})
	b := NewSignIntervals()
	b.InsertBoundary(SignBoundary{Min: 5, Sign: SignNegative})
	b.InsertBoundary(SignBoundary{Min: 15, Sign: SignPositive})

	u := CombineUnion(a, b)
	checkTotal(t, u.Intervals())
	cases := []struct {
		x    float64
		want Sign
	}{
		{x: -1, want: SignUnknown},
		{x: 1, want: SignNegative},  // only a asserts negative.
		{x: 7, want: SignNegative},  // both negative.
		{x: 12, want: SignNegative}, // a positive, b negative: negative wins.
		{x: 20, want: SignPositive}, // both positive.
	}
	for _, tc := range cases {
		if got := u.signAt(tc.x); got != tc.want {
			t.Errorf("union sign at %g = %v, want %v", tc.x, got, tc.want)
		}
	}
}
