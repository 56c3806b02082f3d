package triangle

import (
	"testing"

	"github.com/dcrane/isofield/vec3"
	"github.com/stretchr/testify/assert"
)

func flatTriangle() Triangle {
	return New(vec3.Vec{0, 0, 0}, vec3.Vec{1, 0, 0}, vec3.Vec{0, 1, 0})
}

func TestClosestPointOnFace(t *testing.T) {
	tr := flatTriangle()
	q := vec3.Vec{0.2, 0.2, 1}
	p, f := tr.ClosestPoint(q)
	assert.Equal(t, FeatureFace, f.Kind)
	assert.InDelta(t, 0.0, p.Z, 1e-9)
}

func TestClosestPointVertex(t *testing.T) {
	tr := flatTriangle()
	q := vec3.Vec{-1, -1, 0}
	p, f := tr.ClosestPoint(q)
	assert.Equal(t, FeatureVertex, f.Kind)
	assert.Equal(t, vec3.Vec{0, 0, 0}, p)
}

func TestClosestPointSatisfiesMinimality(t *testing.T) {
	tr := flatTriangle()
	queries := []vec3.Vec{
		{2, 2, 2}, {-3, 0.1, 0.4}, {0.1, 0.1, 5}, {0.5, 0.5, -2},
	}
	for _, q := range queries {
		p, _ := tr.ClosestPoint(q)
		dq := q.Sub(p).Length()
		for _, v := range tr.P {
			assert.LessOrEqual(t, dq, q.Sub(v).Length()+1e-5)
		}
	}
}

func TestSignedDistanceSign(t *testing.T) {
	tr := flatTriangle() // normal is +Z (since (1,0,0)x(0,1,0) = (0,0,1))
	above := tr.SignedDistance(vec3.Vec{0.1, 0.1, 1})
	below := tr.SignedDistance(vec3.Vec{0.1, 0.1, -1})
	assert.Greater(t, above, 0.0)
	assert.Less(t, below, 0.0)
}

func TestAngleAtVertexSumsToPi(t *testing.T) {
	tr := flatTriangle()
	sum := tr.AngleAtVertex(0) + tr.AngleAtVertex(1) + tr.AngleAtVertex(2)
	assert.InDelta(t, 3.14159265, sum, 1e-6)
}
