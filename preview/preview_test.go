package preview

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/field"
	"github.com/dcrane/isofield/graph"
	"github.com/dcrane/isofield/mesh"
	"github.com/dcrane/isofield/vec3"
)

type linearX struct{}

func (linearX) EvaluateAt(_ *graph.Scratch, x, y, z float64) float64 { return x }

func TestDefaultRampClampsToRange(t *testing.T) {
	lo := DefaultRamp(-1)
	hi := DefaultRamp(2)
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 255, A: 255}, lo)
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, hi)
}

func TestRenderZSliceHeatmapFillsEveryPixel(t *testing.T) {
	img, err := RenderZSliceHeatmap(linearX{}, 8, 8, -1, 1, -1, 1, 0, -1, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
	left := img.RGBAAt(0, 4)
	right := img.RGBAAt(7, 4)
	assert.Less(t, left.R, right.R)
}

func TestRenderDenseSliceHasGridDimensions(t *testing.T) {
	bb := bbox.Box3{Min: vec3.Vec{X: 0, Y: 0, Z: 0}, Max: vec3.Vec{X: 2, Y: 2, Z: 2}}
	f, err := field.FromBounds(bb, 1.0)
	require.NoError(t, err)
	f.SampleFromGraph(linearX{})

	img := RenderDenseSlice(f, 0, 0, 2, nil)
	require.NotNil(t, img)
	assert.Equal(t, f.N.NI, img.Bounds().Dx())
	assert.Equal(t, f.N.NJ, img.Bounds().Dy())
}

func TestAnnotateAxesDoesNotError(t *testing.T) {
	img, err := RenderZSliceHeatmap(linearX{}, 32, 32, -1, 1, -1, 1, 0, -1, 1, nil)
	require.NoError(t, err)
	bb := bbox.Box3{Min: vec3.Vec{X: -1, Y: -1, Z: -1}, Max: vec3.Vec{X: 1, Y: 1, Z: 1}}
	assert.NoError(t, AnnotateAxes(img, bb, 4))
}

func TestWriteMeshWireframeSVGRejectsDegenerateBounds(t *testing.T) {
	m := mesh.IndexedMesh{
		Vertices: []vec3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Faces:    []mesh.Face{{0, 1, 2}},
	}
	bb := bbox.Box3{Min: vec3.Vec{X: 0, Y: 0, Z: 0}, Max: vec3.Vec{X: 0, Y: 1, Z: 1}}
	var buf bytes.Buffer
	err := WriteMeshWireframeSVG(&buf, m, bb, 100, 100)
	assert.Error(t, err)
}

func TestWriteMeshWireframeSVGWritesDedupedEdges(t *testing.T) {
	m := mesh.IndexedMesh{
		Vertices: []vec3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 1, Y: 1, Z: 0},
		},
		Faces: []mesh.Face{{0, 1, 2}, {1, 3, 2}},
	}
	bb := bbox.Box3{Min: vec3.Vec{X: 0, Y: 0, Z: 0}, Max: vec3.Vec{X: 1, Y: 1, Z: 1}}
	var buf bytes.Buffer
	require.NoError(t, WriteMeshWireframeSVG(&buf, m, bb, 100, 100))
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "<line")
}
