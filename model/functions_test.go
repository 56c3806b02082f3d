package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGyroidVanishesAtOrigin(t *testing.T) {
	g := Gyroid{Length: 1}
	assert.InDelta(t, 0.0, g.Eval(0, 0, 0), 1e-9)
}

func TestGyroidScaledByHalfLength(t *testing.T) {
	g := Gyroid{Length: 1}
	// f*x = pi/2 -> sin=1, cos=0 on the first term, others vanish.
	assert.InDelta(t, 0.5, g.Eval(0.5, 0, 0), 1e-9)
}

func TestSchwarzPScaledByHalfPeriod(t *testing.T) {
	s := SchwarzP{Length: 1}
	assert.InDelta(t, 1.5, s.Eval(0, 0, 0), 1e-9)
	assert.InDelta(t, 1.0, s.Eval(0.25, 0, 0), 1e-9)
}

func TestNeoviusNormalizedAndScaled(t *testing.T) {
	n := Neovius{Length: 1}
	want := 0.368 * (13.0 / 7.5)
	assert.InDelta(t, want, n.Eval(0, 0, 0), 1e-9)
}

// TestGyroidStaysLipschitzBounded guards the invariant
// field/sparse.go's bandIntersects relies on: a step along x must not
// move the Gyroid's value by more than twice the step size, keeping this
// approximate distance function usable in the sparse narrow-band sampler.
func TestGyroidStaysLipschitzBounded(t *testing.T) {
	const length = 2.0
	const step = 0.01
	fns := []Gyroid{{Length: length}}
	for _, g := range fns {
		var maxSlope float64
		for x := -length; x < length; x += step {
			d := math.Abs(g.Eval(x+step, 0, 0)-g.Eval(x, 0, 0)) / step
			if d > maxSlope {
				maxSlope = d
			}
		}
		assert.Less(t, maxSlope, 2.0)
	}
}
