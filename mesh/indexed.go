// Package mesh builds an IndexedMesh from a triangle soup via spatial
// vertex deduplication, computes angle-weighted vertex normals, and
// exposes the mesh as an octree.Octree for signed-distance queries.
package mesh

import (
	"sync"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/octree"
	"github.com/dcrane/isofield/spatialhash"
	"github.com/dcrane/isofield/triangle"
	"github.com/dcrane/isofield/vec3"
)

// Face is a triple of vertex indices.
type Face [3]uint32

// IndexedMesh is a deduplicated vertex array plus a face array, with
// optional angle-weighted per-vertex normals.
type IndexedMesh struct {
	Vertices []vec3.Vec
	Faces    []Face
	Normals  []vec3.Vec // nil until ComputeNormals is called
}

// FromTriangles routes each triangle's three vertices through a spatial
// hash grid (tol, or vec3.Tolerance if tol<=0) and emits a face whenever
// the resulting three indices are pairwise distinct; degenerate triangles
// are silently dropped (spec.md §3/§4.4).
func FromTriangles(tris []triangle.Triangle, tol float64) IndexedMesh {
	grid := spatialhash.New(tol)
	faces := make([]Face, 0, len(tris))
	for _, tr := range tris {
		i0 := grid.Index(tr.P[0])
		i1 := grid.Index(tr.P[1])
		i2 := grid.Index(tr.P[2])
		if i0 == i1 || i1 == i2 || i0 == i2 {
			continue
		}
		faces = append(faces, Face{i0, i1, i2})
	}
	return IndexedMesh{
		Vertices: append([]vec3.Vec(nil), grid.Vertices()...),
		Faces:    faces,
	}
}

// AsTriangles reconstructs the triangle soup implied by the indexed mesh,
// attaching the baked-in per-vertex normals (if ComputeNormals has been
// called).
func (m IndexedMesh) AsTriangles() []triangle.Triangle {
	out := make([]triangle.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		t := triangle.New(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
		if m.Normals != nil {
			t.VertexNormals = [3]vec3.Vec{m.Normals[f[0]], m.Normals[f[1]], m.Normals[f[2]]}
		}
		out[i] = t
	}
	return out
}

// incidentFace records a face touching a vertex plus the vertex's local
// index (0,1,2) within that face, so the angle-weight can be looked up.
type incidentFace struct {
	face  int
	local int
}

// ComputeNormals computes, for every vertex, Sum(face_normal * angle at
// vertex) over incident faces, then normalizes (spec.md §4.4). The
// incidence list is built sequentially; the weighted accumulation is
// parallel per vertex (spec.md §5).
func (m *IndexedMesh) ComputeNormals() {
	incidence := make([][]incidentFace, len(m.Vertices))
	faceNormals := make([]vec3.Vec, len(m.Faces))
	faceTris := make([]triangle.Triangle, len(m.Faces))
	for fi, f := range m.Faces {
		t := triangle.New(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
		faceTris[fi] = t
		faceNormals[fi] = t.FaceNormal()
		for local, vi := range f {
			incidence[vi] = append(incidence[vi], incidentFace{face: fi, local: local})
		}
	}

	normals := make([]vec3.Vec, len(m.Vertices))
	var wg sync.WaitGroup
	workers := make(chan int, len(m.Vertices))
	for i := range m.Vertices {
		workers <- i
	}
	close(workers)
	const maxWorkers = 8
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for vi := range workers {
				var acc vec3.Vec
				for _, inc := range incidence[vi] {
					angle := faceTris[inc.face].AngleAtVertex(inc.local)
					acc = acc.Add(faceNormals[inc.face].MulScalar(angle))
				}
				normals[vi] = acc.Normalize()
			}
		}()
	}
	wg.Wait()
	m.Normals = normals
}

// ToOctree wraps the mesh's triangles (with baked-in vertex normals if
// ComputeNormals was called) in an octree.Octree for closest-point and
// signed-distance queries.
func (m IndexedMesh) ToOctree(maxObjects, maxDepth int) *octree.Octree[QueryTriangle] {
	tris := m.AsTriangles()
	qs := make([]QueryTriangle, len(tris))
	for i, t := range tris {
		qs[i] = QueryTriangle{t}
	}
	return octree.Build(qs, maxObjects, maxDepth)
}

// QueryTriangle adapts triangle.Triangle (whose ClosestPoint also returns
// a feature tag) to the simpler octree.SignedQuery contract.
type QueryTriangle struct {
	triangle.Triangle
}

func (q QueryTriangle) Bounds() bbox.Box3 {
	return q.Triangle.Bounds()
}

func (q QueryTriangle) ClosestPoint(p vec3.Vec) vec3.Vec {
	cp, _ := q.Triangle.ClosestPoint(p)
	return cp
}

func (q QueryTriangle) ClosestPointWithNormal(p vec3.Vec) (vec3.Vec, vec3.Vec) {
	return q.Triangle.ClosestPointWithNormal(p)
}
