// Package triangle implements the Triangle primitive: closest-point
// queries with feature classification and pseudonormal synthesis, used by
// the octree for signed-distance queries against triangle meshes.
package triangle

import (
	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/vec3"
)

// featureEpsilon is the tolerance on barycentric-region dot products used
// by the Ericson closest-point classification. The tolerance direction is
// such that boundary cases resolve to the lower-dimensional feature
// (edge/vertex) in preference to FACE — load-bearing for pseudonormal sign
// determination (spec.md §3).
const featureEpsilon = 1e-7

// FeatureKind distinguishes which part of the triangle a closest-point
// query landed on.
type FeatureKind int

const (
	// FeatureFace indicates the closest point is in the triangle interior.
	FeatureFace FeatureKind = iota
	// FeatureEdge indicates the closest point lies on edge [I,J].
	FeatureEdge
	// FeatureVertex indicates the closest point is vertex I.
	FeatureVertex
)

// Feature identifies the triangle region a closest-point query resolved
// to: VERTEX(i), EDGE([i,j]), or FACE.
type Feature struct {
	Kind FeatureKind
	I, J int // I always valid; J valid only for FeatureEdge
}

// Triangle is three vertices with optional per-vertex normals. If
// VertexNormals is the zero value (all three zero vectors) the vertex
// pseudonormal synthesizes from the face normal on demand.
type Triangle struct {
	P             [3]vec3.Vec
	VertexNormals [3]vec3.Vec
}

// New returns a triangle with synthesized (face-normal-derived) vertex
// normals.
func New(p0, p1, p2 vec3.Vec) Triangle {
	t := Triangle{P: [3]vec3.Vec{p0, p1, p2}}
	n := t.FaceNormal()
	t.VertexNormals = [3]vec3.Vec{n, n, n}
	return t
}

// FaceNormal returns (p1-p0) x (p2-p0) normalized.
func (t Triangle) FaceNormal() vec3.Vec {
	return t.P[1].Sub(t.P[0]).Cross(t.P[2].Sub(t.P[0])).Normalize()
}

// Degenerate reports whether the magnitude of (p1-p0) x (p2-p0), twice
// the triangle's area, is within eps of zero.
func (t Triangle) Degenerate(eps float64) bool {
	n := t.P[1].Sub(t.P[0]).Cross(t.P[2].Sub(t.P[0]))
	return n.Length() <= eps
}

// Bounds returns the triangle's axis-aligned bounding box, satisfying the
// octree.Bounded constraint.
func (t Triangle) Bounds() bbox.Box3 {
	return bbox.FromPoints(t.P[:])
}

// ClosestPoint implements the Ericson "closest point on triangle"
// algorithm (Real-Time Collision Detection §5.1.5) with the feature
// tolerance convention of spec.md §3: ties are resolved toward the
// lower-dimensional feature.
func (t Triangle) ClosestPoint(q vec3.Vec) (vec3.Vec, Feature) {
	a, b, c := t.P[0], t.P[1], t.P[2]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := q.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= featureEpsilon && d2 <= featureEpsilon {
		return a, Feature{Kind: FeatureVertex, I: 0}
	}

	bp := q.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= -featureEpsilon && d4 <= d3+featureEpsilon {
		return b, Feature{Kind: FeatureVertex, I: 1}
	}

	vc := d1*d4 - d3*d2
	if vc <= featureEpsilon && d1 >= -featureEpsilon && d3 <= featureEpsilon {
		v := d1 / (d1 - d3)
		return a.Add(ab.MulScalar(v)), Feature{Kind: FeatureEdge, I: 0, J: 1}
	}

	cp := q.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= -featureEpsilon && d5 <= d6+featureEpsilon {
		return c, Feature{Kind: FeatureVertex, I: 2}
	}

	vb := d5*d2 - d1*d6
	if vb <= featureEpsilon && d2 >= -featureEpsilon && d6 <= featureEpsilon {
		w := d2 / (d2 - d6)
		return a.Add(ac.MulScalar(w)), Feature{Kind: FeatureEdge, I: 0, J: 2}
	}

	va := d3*d6 - d5*d4
	if va <= featureEpsilon && (d4-d3) >= -featureEpsilon && (d5-d6) >= -featureEpsilon {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).MulScalar(w)), Feature{Kind: FeatureEdge, I: 1, J: 2}
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.MulScalar(v)).Add(ac.MulScalar(w)), Feature{Kind: FeatureFace}
}

// vertexNormal returns the (possibly synthesized) vertex normal at index i.
func (t Triangle) vertexNormal(i int) vec3.Vec {
	n := t.VertexNormals[i]
	if n == vec3.Zero {
		return t.FaceNormal()
	}
	return n
}

// ClosestPointWithNormal returns the closest point on the triangle to q,
// along with the angle-weighted pseudonormal appropriate for the feature
// the closest point landed on:
//
//   - FACE:   the face normal.
//   - EDGE:   slerp of the two endpoint vertex normals, parameterized by
//     the closest point's position along the edge.
//   - VERTEX: the (baked-in or synthesized) vertex normal.
func (t Triangle) ClosestPointWithNormal(q vec3.Vec) (vec3.Vec, vec3.Vec) {
	p, f := t.ClosestPoint(q)
	switch f.Kind {
	case FeatureVertex:
		return p, t.vertexNormal(f.I)
	case FeatureEdge:
		n0 := t.vertexNormal(f.I)
		n1 := t.vertexNormal(f.J)
		e0, e1 := t.P[f.I], t.P[f.J]
		edgeLen2 := e1.Sub(e0).Length2()
		var param float64
		if edgeLen2 > 0 {
			param = p.Sub(e0).Dot(e1.Sub(e0)) / edgeLen2
		}
		if param < 0 {
			param = 0
		}
		if param > 1 {
			param = 1
		}
		return p, vec3.Slerp(n0, n1, param)
	default:
		return p, t.FaceNormal()
	}
}

// SignedDistance returns the sign-adjusted distance from q to the
// triangle: negative iff the pseudonormal at the closest point faces away
// from q (i.e. q is "behind" the surface), per spec.md §4.3.
func (t Triangle) SignedDistance(q vec3.Vec) float64 {
	p, n := t.ClosestPointWithNormal(q)
	d := q.Sub(p).Length()
	if n.Dot(q.Sub(p)) < 0 {
		return -d
	}
	return d
}

// angleAtVertex returns the interior angle of the triangle at vertex i,
// used for angle-weighted normal accumulation (see package mesh).
func (t Triangle) angleAtVertex(i int) float64 {
	j := (i + 1) % 3
	k := (i + 2) % 3
	e1 := t.P[j].Sub(t.P[i])
	e2 := t.P[k].Sub(t.P[i])
	return vec3.AngleBetween(e1, e2)
}

// AngleAtVertex exposes angleAtVertex for package mesh's normal-baking
// pass.
func (t Triangle) AngleAtVertex(i int) float64 {
	return t.angleAtVertex(i)
}
