package spatialhash

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcrane/isofield/vec3"
)

func TestIndexAssignsSameIndexWithinTolerance(t *testing.T) {
	g := New(1e-3)
	i0 := g.Index(vec3.Vec{X: 1, Y: 1, Z: 1})
	i1 := g.Index(vec3.Vec{X: 1 + 1e-5, Y: 1, Z: 1})
	assert.Equal(t, i0, i1)
	assert.Equal(t, 1, g.Len())
}

func TestIndexAssignsDistinctIndicesOutsideTolerance(t *testing.T) {
	g := New(1e-3)
	i0 := g.Index(vec3.Vec{X: 0, Y: 0, Z: 0})
	i1 := g.Index(vec3.Vec{X: 1, Y: 0, Z: 0})
	assert.NotEqual(t, i0, i1)
	assert.Equal(t, 2, g.Len())
}

func TestIndexIsOrderStable(t *testing.T) {
	g := New(1e-3)
	a := g.Index(vec3.Vec{X: 0, Y: 0, Z: 0})
	b := g.Index(vec3.Vec{X: 5, Y: 5, Z: 5})
	aAgain := g.Index(vec3.Vec{X: 0, Y: 0, Z: 0})
	assert.Equal(t, a, aAgain)
	assert.NotEqual(t, a, b)
}

func TestNewDefaultsNonPositiveToleranceToVec3Tolerance(t *testing.T) {
	g := New(0)
	assert.Equal(t, vec3.Tolerance, g.tol)
	gNeg := New(-1)
	assert.Equal(t, vec3.Tolerance, gNeg.tol)
}

func TestVerticesReflectsInsertionOrder(t *testing.T) {
	g := New(1e-3)
	p0 := vec3.Vec{X: 0, Y: 0, Z: 0}
	p1 := vec3.Vec{X: 9, Y: 9, Z: 9}
	g.Index(p0)
	g.Index(p1)
	verts := g.Vertices()
	assert.Equal(t, p0, verts[0])
	assert.Equal(t, p1, verts[1])
}
