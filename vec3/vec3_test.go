package vec3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnitMagnitude(t *testing.T) {
	vs := []Vec{{1, 2, 3}, {-4, 0.5, 9}, {1, 0, 0}, {0.001, 0.002, 0.003}}
	for _, v := range vs {
		n := v.Normalize()
		assert.InDelta(t, 1.0, n.Length(), 1e-6)
	}
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Zero, Zero.Normalize())
}

func TestSlerpUnitMagnitude(t *testing.T) {
	a := Vec{1, 0, 0}
	b := Vec{0, 1, 0}
	for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		r := Slerp(a, b, tt)
		assert.InDelta(t, 1.0, r.Length(), 1e-6)
	}
}

func TestSlerpEndpoints(t *testing.T) {
	a := Vec{1, 0, 0}
	b := Vec{0, 1, 0}
	assert.InDelta(t, 0.0, Slerp(a, b, 0).Sub(a).Length(), 1e-9)
	assert.InDelta(t, 0.0, Slerp(a, b, 1).Sub(b).Length(), 1e-9)
}

func TestSlerpDegenerateParallel(t *testing.T) {
	a := Vec{1, 0, 0}
	b := Vec{2, 0, 0}
	r := Slerp(a, b, 0.5)
	assert.InDelta(t, 1.0, r.Length(), 1e-6)
}

func TestCrossOrthogonal(t *testing.T) {
	a := Vec{1, 0, 0}
	b := Vec{0, 1, 0}
	c := a.Cross(b)
	assert.InDelta(t, 0.0, c.Dot(a), 1e-9)
	assert.InDelta(t, 0.0, c.Dot(b), 1e-9)
	assert.InDelta(t, 1.0, c.Z, 1e-9)
}

func TestAngleBetween(t *testing.T) {
	a := Vec{1, 0, 0}
	b := Vec{0, 1, 0}
	assert.InDelta(t, math.Pi/2, AngleBetween(a, b), 1e-9)
}
