package preview

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/mesh"
)

// WriteMeshWireframeSVG projects m's triangle edges onto the XY plane and
// writes them as an SVG wireframe overlaid on bb's outline, scaled to fit
// a width x height canvas. A debug aid for eyeballing a surface's
// silhouette without a 3D viewer.
func WriteMeshWireframeSVG(w io.Writer, m mesh.IndexedMesh, bb bbox.Box3, width, height int) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	defer canvas.End()

	size := bb.Size()
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("preview: degenerate bounds for SVG projection")
	}
	sx := float64(width) / size.X
	sy := float64(height) / size.Y

	project := func(x, y float64) (int, int) {
		px := int((x - bb.Min.X) * sx)
		py := height - int((y-bb.Min.Y)*sy)
		return px, py
	}

	bx0, by0 := project(bb.Min.X, bb.Min.Y)
	bx1, by1 := project(bb.Max.X, bb.Max.Y)
	canvas.Rect(bx0, by1, bx1-bx0, by0-by1, "fill:none;stroke:gray;stroke-dasharray:4,2")

	seen := make(map[[2]uint32]bool)
	for _, f := range m.Faces {
		edges := [3][2]uint32{{f[0], f[1]}, {f[1], f[2]}, {f[2], f[0]}}
		for _, e := range edges {
			a, b := e[0], e[1]
			if a > b {
				a, b = b, a
			}
			key := [2]uint32{a, b}
			if seen[key] {
				continue
			}
			seen[key] = true
			p0, p1 := m.Vertices[e[0]], m.Vertices[e[1]]
			x0, y0 := project(p0.X, p0.Y)
			x1, y1 := project(p1.X, p1.Y)
			canvas.Line(x0, y0, x1, y1, "stroke:black;stroke-width:0.5")
		}
	}
	return nil
}
