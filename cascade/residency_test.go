package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestResidency(t *testing.T) {
	r := NewResidency()
	origin := r3.Vec{X: 1, Y: 2, Z: 3}
	assert.False(t, r.IsLoaded(origin))
	assert.Zero(t, r.Len())

	r.MarkLoaded(origin)
	assert.True(t, r.IsLoaded(origin))
	assert.Equal(t, 1, r.Len())

	r.MarkLoaded(origin) // idempotent
	assert.Equal(t, 1, r.Len())

	r.MarkUnloaded(origin)
	assert.False(t, r.IsLoaded(origin))
	assert.Zero(t, r.Len())

	r.MarkUnloaded(origin) // removing again is a no-op
	assert.Zero(t, r.Len())
}

func TestWrap(t *testing.T) {
	const size = 10.0
	cases := []struct {
		in, want r3.Vec
	}{
		{in: r3.Vec{X: 3, Y: 4, Z: 5}, want: r3.Vec{X: 3, Y: 4, Z: 5}},
		{in: r3.Vec{X: 13, Y: -4, Z: 25}, want: r3.Vec{X: 3, Y: 6, Z: 5}},
		{in: r3.Vec{X: -0.5}, want: r3.Vec{X: 9.5}},
		{in: r3.Vec{X: 10}, want: r3.Vec{X: 0}},
	}
	for _, tc := range cases {
		got := Wrap(tc.in, size)
		assert.InDelta(t, tc.want.X, got.X, 1e-12)
		assert.InDelta(t, tc.want.Y, got.Y, 1e-12)
		assert.InDelta(t, tc.want.Z, got.Z, 1e-12)
	}

	// Non-positive world size disables wrapping.
	p := r3.Vec{X: -42, Y: 1000, Z: 3}
	assert.Equal(t, p, Wrap(p, 0))
	assert.Equal(t, p, Wrap(p, -1))
}
