package mc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/field"
	"github.com/dcrane/isofield/model"
	"github.com/dcrane/isofield/vec3"
)

func triangleArea(t0, t1, t2 vec3.Vec) float64 {
	return t1.Sub(t0).Cross(t2.Sub(t0)).Length() * 0.5
}

func newSplitDense(ni, nj, nk int, negAtTopK int) *field.Dense {
	d := &field.Dense{
		Origin:   vec3.Vec{},
		CellSize: 1,
		N:        field.Dims{NI: ni, NJ: nj, NK: nk},
		Data:     make([]float64, ni*nj*nk),
		Bounds:   bbox.New(vec3.Vec{}, vec3.Vec{X: float64(ni - 1), Y: float64(nj - 1), Z: float64(nk - 1)}),
	}
	for k := 0; k < nk; k++ {
		for j := 0; j < nj; j++ {
			for i := 0; i < ni; i++ {
				v := 1.0
				if k >= negAtTopK {
					v = -1.0
				}
				d.Data[d.Index(i, j, k)] = v
			}
		}
	}
	return d
}

func Test2x2x2SplitField(t *testing.T) {
	d := newSplitDense(2, 2, 2, 1)
	m, err := ExtractSurface(d, 0, 0)
	require.NoError(t, err)
	require.Len(t, m.Faces, 2)

	var area float64
	for _, tris := range m.AsTriangles() {
		area += triangleArea(tris.P[0], tris.P[1], tris.P[2])
		for _, p := range tris.P {
			assert.InDelta(t, 0.5, p.Z, 1e-9)
		}
	}
	assert.InDelta(t, 0.5, area, 1e-6)
}

func Test3x2x2SplitField(t *testing.T) {
	d := newSplitDense(3, 2, 2, 1)
	m, err := ExtractSurface(d, 0, 0)
	require.NoError(t, err)
	require.Len(t, m.Faces, 4)

	for _, tris := range m.AsTriangles() {
		for _, p := range tris.P {
			assert.InDelta(t, 0.5, p.Z, 1e-9)
		}
	}
}

func TestNoTrianglesWhenUniform(t *testing.T) {
	d := newSplitDense(2, 2, 2, 5) // no crossing: everything stays +1
	m, err := ExtractSurface(d, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, m.Faces)
}

func TestInterpolateSnapsToEndpoint(t *testing.T) {
	p1 := vec3.Vec{X: 0, Y: 0, Z: 0}
	p2 := vec3.Vec{X: 1, Y: 0, Z: 0}

	got := interpolate(p1, p2, 0, 1, 1e-7)
	assert.Equal(t, p1, got)

	got = interpolate(p1, p2, -1, 1e-7, 1e-7)
	assert.Equal(t, p2, got)

	got = interpolate(p1, p2, -1, 1, 0)
	assert.InDelta(t, 0.5, got.X, 1e-12)
}

func TestSphereIsoSurface(t *testing.T) {
	m := model.New()
	_, err := m.AddFunction("sphere", model.Sphere{Radius: 4.0})
	require.NoError(t, err)
	g, err := m.Compile("sphere")
	require.NoError(t, err)

	bb := bbox.New(vec3.Vec{X: -5, Y: -5, Z: -5}, vec3.Vec{X: 5, Y: 5, Z: 5})
	d, err := field.FromBounds(bb, 0.5)
	require.NoError(t, err)
	d.SampleFromGraph(g)

	mesh, err := ExtractSurface(d, 0, 0)
	require.NoError(t, err)

	var area float64
	for _, tri := range mesh.AsTriangles() {
		area += triangleArea(tri.P[0], tri.P[1], tri.P[2])
	}
	// spec.md §8 scenario 3's exact anchors for this 10x10x10 box, cell_size
	// 0.5, iso 0 sphere of radius 4.0.
	assert.Equal(t, 2312, len(mesh.Faces))
	assert.InDelta(t, 200.08, area, 0.1)
}
