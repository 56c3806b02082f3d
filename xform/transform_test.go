package xform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcrane/isofield/vec3"
)

func approxVec(t *testing.T, want, got vec3.Vec, tol float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol)
	assert.InDelta(t, want.Y, got.Y, tol)
	assert.InDelta(t, want.Z, got.Z, tol)
}

func TestIdentityTransformIsNoOp(t *testing.T) {
	tr := &Transform{}
	v := vec3.Vec{X: 1, Y: 2, Z: 3}
	approxVec(t, v, tr.Apply(v), 1e-9)
}

func TestRotateZQuarterTurnMapsXToY(t *testing.T) {
	tr := &Transform{RZ: math.Pi / 2}
	got := tr.Apply(vec3.Vec{X: 1, Y: 0, Z: 0})
	approxVec(t, vec3.Vec{X: 0, Y: 1, Z: 0}, got, 1e-9)
}

func TestRotateXQuarterTurnMapsYToZ(t *testing.T) {
	tr := &Transform{RX: math.Pi / 2}
	got := tr.Apply(vec3.Vec{X: 0, Y: 1, Z: 0})
	approxVec(t, vec3.Vec{X: 0, Y: 0, Z: 1}, got, 1e-9)
}

func TestTranslationAppliesAfterRotation(t *testing.T) {
	tr := &Transform{RZ: math.Pi / 2, Translate: vec3.Vec{X: 10, Y: 0, Z: 0}}
	got := tr.Apply(vec3.Vec{X: 1, Y: 0, Z: 0})
	approxVec(t, vec3.Vec{X: 10, Y: 1, Z: 0}, got, 1e-9)
}

func TestApplyInverseRecoversOriginal(t *testing.T) {
	tr := &Transform{RX: 0.4, RY: -0.7, RZ: 1.1, Translate: vec3.Vec{X: 3, Y: -2, Z: 5}}
	v := vec3.Vec{X: 1.5, Y: -2.25, Z: 0.75}
	roundTripped := tr.ApplyInverse(tr.Apply(v))
	approxVec(t, v, roundTripped, 1e-9)
}

func TestBasisIsCachedAcrossCalls(t *testing.T) {
	tr := &Transform{RZ: 0.3}
	b1 := tr.Basis()
	b2 := tr.Basis()
	assert.Same(t, b1, b2)
}
