package meshio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/field"
	"github.com/dcrane/isofield/graph"
	"github.com/dcrane/isofield/mesh"
	"github.com/dcrane/isofield/vec3"
)

func unitTriangleMesh() mesh.IndexedMesh {
	return mesh.IndexedMesh{
		Vertices: []vec3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Faces: []mesh.Face{{0, 1, 2}},
	}
}

func TestWriteObjThenReadObjRoundTripsVerticesAndFaces(t *testing.T) {
	m := unitTriangleMesh()

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, m, NoFlip))

	out, err := ReadOBJ(&buf, NoFlip)
	require.NoError(t, err)

	require.Len(t, out.Vertices, 3)
	require.Len(t, out.Faces, 1)
	for i, v := range m.Vertices {
		assert.InDelta(t, v.X, out.Vertices[i].X, 1e-9)
		assert.InDelta(t, v.Y, out.Vertices[i].Y, 1e-9)
		assert.InDelta(t, v.Z, out.Vertices[i].Z, 1e-9)
	}
	assert.Equal(t, m.Faces[0], out.Faces[0])
}

func TestWriteObjFlipYZSwapsAxes(t *testing.T) {
	m := mesh.IndexedMesh{
		Vertices: []vec3.Vec{{X: 1, Y: 2, Z: 3}},
		Faces:    []mesh.Face{{0, 0, 0}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, m, FlipYZ))
	assert.Contains(t, buf.String(), "v 1 3 2")
}

func TestReadObjAttachesNormalsWhenCountMatchesVertices(t *testing.T) {
	src := strings.Join([]string{
		"v 0 0 0",
		"v 1 0 0",
		"v 0 1 0",
		"vn 0 0 1",
		"vn 0 0 1",
		"vn 0 0 1",
		"f 1//1 2//2 3//3",
	}, "\n")

	out, err := ReadOBJ(strings.NewReader(src), NoFlip)
	require.NoError(t, err)
	require.Len(t, out.Normals, 3)
	assert.Equal(t, vec3.Vec{X: 0, Y: 0, Z: 1}, out.Normals[0])
}

func TestReadObjSkipsCommentsAndBlankLines(t *testing.T) {
	src := "# a comment\n\nv 0 0 0\n\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	out, err := ReadOBJ(strings.NewReader(src), NoFlip)
	require.NoError(t, err)
	assert.Len(t, out.Vertices, 3)
	assert.Len(t, out.Faces, 1)
}

func TestWriteFieldCSVHasHeaderAndOneRowPerPoint(t *testing.T) {
	bb := bbox.Box3{Min: vec3.Vec{X: 0, Y: 0, Z: 0}, Max: vec3.Vec{X: 1, Y: 1, Z: 1}}
	f, err := field.FromBounds(bb, 1.0)
	require.NoError(t, err)
	f.SampleFromGraph(constField{v: 2.5})

	var buf bytes.Buffer
	require.NoError(t, WriteFieldCSV(&buf, f))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, "x,y,z,v", lines[0])
	assert.Len(t, lines, 1+f.N.NI*f.N.NJ*f.N.NK)
	assert.Contains(t, lines[1], ",2.5")
}

type constField struct{ v float64 }

func (c constField) EvaluateAt(s *graph.Scratch, x, y, z float64) float64 { return c.v }
