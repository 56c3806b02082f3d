// Package octree implements a generic, recursively-subdivided 8-ary
// spatial index over bounded, closest-point-queryable objects. It backs
// both mesh-based SDF evaluation (package model) and general closest-point
// consumption of a rendered mesh.
package octree

import (
	"math"
	"sort"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/vec3"
)

// Bounded is the minimal capability an octree object must expose.
type Bounded interface {
	Bounds() bbox.Box3
}

// Query is the capability an object must expose to be stored in an
// Octree[Q]: axis-aligned bounds plus a closest-point query that returns
// the closest point on/in the object. SignedQuery objects additionally
// support signed-distance queries.
type Query interface {
	Bounds() bbox.Box3
	ClosestPoint(p vec3.Vec) vec3.Vec
}

// SignedQuery is a Query that can also report a pseudonormal at the
// closest point, enabling signed-distance queries.
type SignedQuery interface {
	Query
	ClosestPointWithNormal(p vec3.Vec) (vec3.Vec, vec3.Vec)
}

// node is an internal octree node.
type node[Q Query] struct {
	bounds   bbox.Box3
	objects  []Q
	children []*node[Q] // nil until subdivided; always len 8 once non-nil
}

// Octree is a recursive AABB-partitioned index over Query objects. The
// tree owns its objects by value; Q should therefore be cheap to copy
// (spec.md §3 — triangles are 9-18 scalars).
type Octree[Q Query] struct {
	root       *node[Q]
	maxObjects int
	maxDepth   int
}

// Build constructs an octree over objects, subdividing a node when it has
// more than maxObjects objects and maxDepth has not been exhausted. An
// object is placed into every child whose bounds it intersects — an
// object may therefore appear in multiple leaves, which is intentional
// (spec.md §4.3).
func Build[Q Query](objects []Q, maxObjects, maxDepth int) *Octree[Q] {
	if maxObjects < 1 {
		maxObjects = 1
	}
	bounds := bbox.Box3{}
	if len(objects) > 0 {
		bounds = objects[0].Bounds()
		for _, o := range objects[1:] {
			bounds = bounds.Union(o.Bounds())
		}
	}
	root := &node[Q]{bounds: bounds, objects: append([]Q(nil), objects...)}
	subdivide(root, maxDepth, maxObjects)
	return &Octree[Q]{root: root, maxObjects: maxObjects, maxDepth: maxDepth}
}

func subdivide[Q Query](n *node[Q], depth, maxObjects int) {
	if depth == 0 || len(n.objects) <= maxObjects {
		return
	}
	c := n.bounds.Center()
	min, max := n.bounds.Min, n.bounds.Max
	// the 8 octant AABBs, in the canonical corner order of bbox.Box3.Corners
	octants := [8]bbox.Box3{
		bbox.New(vec3.Vec{X: min.X, Y: min.Y, Z: min.Z}, vec3.Vec{X: c.X, Y: c.Y, Z: c.Z}),
		bbox.New(vec3.Vec{X: c.X, Y: min.Y, Z: min.Z}, vec3.Vec{X: max.X, Y: c.Y, Z: c.Z}),
		bbox.New(vec3.Vec{X: c.X, Y: c.Y, Z: min.Z}, vec3.Vec{X: max.X, Y: max.Y, Z: c.Z}),
		bbox.New(vec3.Vec{X: min.X, Y: c.Y, Z: min.Z}, vec3.Vec{X: c.X, Y: max.Y, Z: c.Z}),
		bbox.New(vec3.Vec{X: min.X, Y: min.Y, Z: c.Z}, vec3.Vec{X: c.X, Y: c.Y, Z: max.Z}),
		bbox.New(vec3.Vec{X: c.X, Y: min.Y, Z: c.Z}, vec3.Vec{X: max.X, Y: c.Y, Z: max.Z}),
		bbox.New(vec3.Vec{X: c.X, Y: c.Y, Z: c.Z}, vec3.Vec{X: max.X, Y: max.Y, Z: max.Z}),
		bbox.New(vec3.Vec{X: min.X, Y: c.Y, Z: c.Z}, vec3.Vec{X: c.X, Y: max.Y, Z: max.Z}),
	}
	children := make([]*node[Q], 8)
	any8 := false
	for i, ob := range octants {
		var objs []Q
		for _, o := range n.objects {
			if ob.Intersects(o.Bounds()) {
				objs = append(objs, o)
			}
		}
		children[i] = &node[Q]{bounds: ob, objects: objs}
		if len(objs) > 0 {
			any8 = true
		}
	}
	if !any8 {
		// nothing separated (e.g. all objects share the full extent) —
		// avoid infinite subdivision of an unproductive split.
		return
	}
	n.children = children
	n.objects = nil // internal nodes hold no objects once subdivided
	for _, ch := range children {
		subdivide(ch, depth-1, maxObjects)
	}
}

type candidate[Q Query] struct {
	child *node[Q]
	dist2 float64
}

// ClosestPoint returns the closest point on any stored object to p, the
// object itself, and true if the tree is non-empty.
func (t *Octree[Q]) ClosestPoint(p vec3.Vec) (vec3.Vec, Q, bool) {
	var zero Q
	if t == nil || t.root == nil {
		return vec3.Vec{}, zero, false
	}
	best := vec3.Vec{}
	var bestObj Q
	bestDist2 := math.Inf(1)
	found := false
	searchClosest(t.root, p, &bestDist2, &best, &bestObj, &found)
	return best, bestObj, found
}

func searchClosest[Q Query](n *node[Q], p vec3.Vec, bestDist2 *float64, bestPt *vec3.Vec, bestObj *Q, found *bool) {
	if n == nil {
		return
	}
	if n.bounds.Dist2ToPoint(p) > *bestDist2 {
		return
	}
	for _, o := range n.objects {
		cp := o.ClosestPoint(p)
		d2 := cp.Sub(p).Length2()
		if d2 < *bestDist2 {
			*bestDist2 = d2
			*bestPt = cp
			*bestObj = o
			*found = true
		}
	}
	if n.children == nil {
		return
	}
	cands := make([]candidate[Q], 0, 8)
	for _, ch := range n.children {
		cands = append(cands, candidate[Q]{child: ch, dist2: ch.bounds.Dist2ToPoint(p)})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].dist2 < cands[j].dist2 })
	for _, cd := range cands {
		if cd.dist2 > *bestDist2 {
			continue
		}
		searchClosest(cd.child, p, bestDist2, bestPt, bestObj, found)
	}
}

// SignedDistance returns the signed distance from p to the nearest stored
// object: negative iff the pseudonormal at the closest point faces away
// from p. Objects must satisfy SignedQuery (see package triangle). Returns
// (0, false) for an empty tree.
func SignedDistance[Q SignedQuery](t *Octree[Q], p vec3.Vec) (float64, bool) {
	_, obj, found := t.ClosestPoint(p)
	if !found {
		return 0, false
	}
	cp, n := obj.ClosestPointWithNormal(p)
	d := p.Sub(cp).Length()
	if n.Dot(p.Sub(cp)) < 0 {
		return -d, true
	}
	return d, true
}

// Bounds returns the bounding box of the whole tree.
func (t *Octree[Q]) Bounds() bbox.Box3 {
	if t == nil || t.root == nil {
		return bbox.Box3{}
	}
	return t.root.bounds
}
