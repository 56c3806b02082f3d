package mesh

import (
	"testing"

	"github.com/dcrane/isofield/octree"
	"github.com/dcrane/isofield/triangle"
	"github.com/dcrane/isofield/vec3"
	"github.com/stretchr/testify/assert"
)

func cubeTriangles(half float64) []triangle.Triangle {
	b := func(x, y, z float64) vec3.Vec { return vec3.Vec{X: x, Y: y, Z: z} }
	n := half
	corners := [8]vec3.Vec{
		b(-n, -n, -n), b(n, -n, -n), b(n, n, -n), b(-n, n, -n),
		b(-n, -n, n), b(n, -n, n), b(n, n, n), b(-n, n, n),
	}
	quad := func(a, b2, c, d int) []triangle.Triangle {
		return []triangle.Triangle{
			triangle.New(corners[a], corners[b2], corners[c]),
			triangle.New(corners[a], corners[c], corners[d]),
		}
	}
	var tris []triangle.Triangle
	tris = append(tris, quad(0, 3, 2, 1)...) // -Z
	tris = append(tris, quad(4, 5, 6, 7)...) // +Z
	tris = append(tris, quad(0, 1, 5, 4)...) // -Y
	tris = append(tris, quad(3, 7, 6, 2)...) // +Y
	tris = append(tris, quad(0, 4, 7, 3)...) // -X
	tris = append(tris, quad(1, 2, 6, 5)...) // +X
	return tris
}

func TestFromTrianglesDedupVertexCount(t *testing.T) {
	tris := cubeTriangles(10)
	m := FromTriangles(tris, 1e-5)
	assert.Len(t, m.Vertices, 8)
	assert.Len(t, m.Faces, 12)
}

func TestRoundTripFaceCount(t *testing.T) {
	tris := cubeTriangles(10)
	m := FromTriangles(tris, 1e-5)
	back := m.AsTriangles()
	assert.Len(t, back, len(tris))
}

func TestComputeNormalsUnitLength(t *testing.T) {
	tris := cubeTriangles(10)
	m := FromTriangles(tris, 1e-5)
	m.ComputeNormals()
	for _, n := range m.Normals {
		assert.InDelta(t, 1.0, n.Length(), 1e-6)
	}
}

func TestOctreeSignedDistanceOnCube(t *testing.T) {
	tris := cubeTriangles(10) // 20-unit cube
	m := FromTriangles(tris, 1e-5)
	m.ComputeNormals()
	tree := m.ToOctree(4, 8)

	center := vec3.Vec{}
	d, ok := octree.SignedDistance[QueryTriangle](tree, center)
	assert.True(t, ok)
	assert.InDelta(t, -10.0, d, 1e-5)

	outside := vec3.Vec{X: 0, Y: 0, Z: 20}
	d2, ok := octree.SignedDistance[QueryTriangle](tree, outside)
	assert.True(t, ok)
	assert.InDelta(t, 10.0, d2, 1e-5)
}
