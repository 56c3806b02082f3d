// Package bbox provides the axis-aligned bounding box used by every
// spatial structure in isofield (octree nodes, field domains, mesh
// triangulation of boxes for visualization).
package bbox

import (
	"math"

	"github.com/dcrane/isofield/vec3"
)

// Box3 is an axis-aligned bounding box. The zero value is the degenerate
// box at the origin (Min == Max == {0,0,0}), matching the "empty box" of
// spec.md §3.
type Box3 struct {
	Min, Max vec3.Vec
}

// New returns the box with the given min/max corners.
func New(min, max vec3.Vec) Box3 {
	return Box3{Min: min, Max: max}
}

// FromCenterSize returns the box centered at c with the given full size.
func FromCenterSize(c, size vec3.Vec) Box3 {
	half := size.MulScalar(0.5)
	return Box3{Min: c.Sub(half), Max: c.Add(half)}
}

// FromPoints returns the smallest box containing all of the given points.
// Returns the zero-value empty box if pts is empty.
func FromPoints(pts []vec3.Vec) Box3 {
	if len(pts) == 0 {
		return Box3{}
	}
	b := Box3{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min = vec3.Min(b.Min, p)
		b.Max = vec3.Max(b.Max, p)
	}
	return b
}

// Size returns max - min.
func (b Box3) Size() vec3.Vec {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Box3) Center() vec3.Vec {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// HalfDiagonal returns the distance from the center to a corner.
func (b Box3) HalfDiagonal() float64 {
	return b.Size().MulScalar(0.5).Length()
}

// Union returns the smallest box containing both a and b.
func (a Box3) Union(b Box3) Box3 {
	return Box3{Min: vec3.Min(a.Min, b.Min), Max: vec3.Max(a.Max, b.Max)}
}

// Contains reports whether p lies within the closed box.
func (b Box3) Contains(p vec3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects reports whether a and b share any volume (touching counts).
func (a Box3) Intersects(b Box3) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// ClosestPoint returns the point on the closed box nearest to p.
func (b Box3) ClosestPoint(p vec3.Vec) vec3.Vec {
	return vec3.Max(b.Min, vec3.Min(b.Max, p))
}

// Dist2ToPoint returns the squared Euclidean distance from p to the
// closest point on the box (zero if p is inside).
func (b Box3) Dist2ToPoint(p vec3.Vec) float64 {
	return b.ClosestPoint(p).Sub(p).Length2()
}

// SignedDistance implements the engine's box SDF convention: the
// interior/exterior classification composed with the minimum absolute
// signed face-offset. This is *not* the textbook exterior Euclidean SDF —
// for a point diagonally outside the box it under-reports the true
// distance to the nearest corner. Operations calibrated against this
// convention (Offset, Thickness) rely on the discrepancy; see spec.md §9.
func (b Box3) SignedDistance(p vec3.Vec) float64 {
	c := b.Center()
	halfSize := b.Size().MulScalar(0.5)
	d := p.Sub(c).Abs().Sub(halfSize)
	// minimum absolute face offset, signed by interior/exterior
	maxD := d.MaxComponent()
	if maxD < 0 {
		// inside: negative distance is the offset to the nearest face
		return maxD
	}
	// outside (or on boundary): positive distance to the nearest face
	// along the dominant axis only, per the engine's convention (not the
	// true corner distance).
	return math.Max(d.X, math.Max(d.Y, d.Z))
}

// Corners returns the 8 corners in the canonical order used by
// marching cubes (see spec.md §4.8 diagram):
//
//	      4 ---- 7        Z
//	     /|     /|        |
//	    5 ---- 6 |        +-- Y
//	    | 0 ---|-3       /
//	    |/     |/       X
//	    1 ---- 2
func (b Box3) Corners() [8]vec3.Vec {
	x0, y0, z0 := b.Min.X, b.Min.Y, b.Min.Z
	x1, y1, z1 := b.Max.X, b.Max.Y, b.Max.Z
	return [8]vec3.Vec{
		{x0, y0, z0}, // 0
		{x1, y0, z0}, // 1
		{x1, y1, z0}, // 2
		{x0, y1, z0}, // 3
		{x0, y0, z1}, // 4
		{x1, y0, z1}, // 5
		{x1, y1, z1}, // 6
		{x0, y1, z1}, // 7
	}
}

// edgePairs indexes Corners() by the 12 canonical marching-cubes edges:
// bottom ring, top ring, then the 4 verticals.
var edgePairs = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Wireframe returns the 12 edges of the box as pairs of corner positions,
// in the edgePairs order over the corners returned by Corners.
func (b Box3) Wireframe() [12][2]vec3.Vec {
	c := b.Corners()
	var edges [12][2]vec3.Vec
	for i, pair := range edgePairs {
		edges[i] = [2]vec3.Vec{c[pair[0]], c[pair[1]]}
	}
	return edges
}

// Triangle3 is a plain 3-vertex triangle, kept local to avoid an import
// cycle with the triangle package (which itself needs Box3 for bounds()).
type Triangle3 [3]vec3.Vec

// Triangulate returns 12 triangles (2 per face) covering the box surface,
// with consistent outward winding.
func (b Box3) Triangulate() [12]Triangle3 {
	c := b.Corners()
	quad := func(a, d2, d3, d4 int) [2]Triangle3 {
		return [2]Triangle3{
			{c[a], c[d2], c[d3]},
			{c[a], c[d3], c[d4]},
		}
	}
	faces := [6][2]Triangle3{
		quad(0, 3, 2, 1), // -Z
		quad(4, 5, 6, 7), // +Z
		quad(0, 1, 5, 4), // -Y
		quad(3, 7, 6, 2), // +Y
		quad(0, 4, 7, 3), // -X
		quad(1, 2, 6, 5), // +X
	}
	var out [12]Triangle3
	for i, f := range faces {
		out[2*i] = f[0]
		out[2*i+1] = f[1]
	}
	return out
}
