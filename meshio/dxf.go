package meshio

import (
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/dcrane/isofield/mesh"
)

// WriteDXFCrossSection slices m with the plane z == z0 and writes the
// resulting wireframe segments as DXF LINE entities via yofu/dxf,
// grounded on the teacher's render.RenderDXF cross-section export
// (examples/spiral/main.go) generalized from a 2D SDF boundary to a
// planar slice of a 3D mesh.
func WriteDXFCrossSection(path string, m mesh.IndexedMesh, z0 float64) error {
	d := dxf.NewDrawing()
	d.AddLayer("cross_section", dxf.DefaultColor, drawing.DASHED, true)
	d.ChangeLayer("cross_section")

	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		pts, ok := triPlaneIntersection(a.X, a.Y, a.Z, b.X, b.Y, b.Z, c.X, c.Y, c.Z, z0)
		if !ok {
			continue
		}
		d.Line(pts[0][0], pts[0][1], 0, pts[1][0], pts[1][1], 0)
	}
	return d.SaveAs(path)
}

// triPlaneIntersection returns the segment where triangle (x0,y0,z0)..
// (x2,y2,z2) crosses the plane z == zp, and false if the triangle doesn't
// straddle it.
func triPlaneIntersection(x0, y0, z0, x1, y1, z1, x2, y2, z2, zp float64) ([2][2]float64, bool) {
	type pt struct{ x, y, z float64 }
	verts := [3]pt{{x0, y0, z0}, {x1, y1, z1}, {x2, y2, z2}}

	var crossings [][2]float64
	for i := 0; i < 3; i++ {
		a, b := verts[i], verts[(i+1)%3]
		if (a.z < zp) == (b.z < zp) {
			continue
		}
		t := (zp - a.z) / (b.z - a.z)
		crossings = append(crossings, [2]float64{a.x + t*(b.x-a.x), a.y + t*(b.y-a.y)})
	}
	if len(crossings) != 2 {
		return [2][2]float64{}, false
	}
	return [2][2]float64{crossings[0], crossings[1]}, true
}
