// Package spatialhash implements coordinate-quantized point->index
// deduplication, used by package mesh to build an indexed mesh from a
// triangle soup.
package spatialhash

import "github.com/dcrane/isofield/vec3"

// cell is the quantized integer coordinate key.
type cell struct {
	I, J, K int64
}

// Grid maps quantized cells to vertex indices: each coordinate is divided
// by the tolerance and truncated to an integer, and points that land in
// the same cell collapse to the same index. Two points within tolerance
// of each other that fall on opposite sides of a cell boundary get
// distinct indices.
// Vertex insertion is append-only and single-threaded (see spec.md §5).
type Grid struct {
	tol      float64
	indices  map[cell]uint32
	vertices []vec3.Vec
}

// New returns an empty grid using the given quantization tolerance. A
// tolerance of zero defaults to vec3.Tolerance.
func New(tol float64) *Grid {
	if tol <= 0 {
		tol = vec3.Tolerance
	}
	return &Grid{
		tol:     tol,
		indices: make(map[cell]uint32),
	}
}

func (g *Grid) quantize(p vec3.Vec) cell {
	return cell{
		I: int64(p.X / g.tol),
		J: int64(p.Y / g.tol),
		K: int64(p.Z / g.tol),
	}
}

// Index returns the vertex index for p, assigning and appending a new one
// if p's quantized cell has not been seen before.
func (g *Grid) Index(p vec3.Vec) uint32 {
	c := g.quantize(p)
	if idx, ok := g.indices[c]; ok {
		return idx
	}
	idx := uint32(len(g.vertices))
	g.indices[c] = idx
	g.vertices = append(g.vertices, p)
	return idx
}

// Vertices returns the append-only vertex list assigned so far. The slice
// must not be mutated by the caller.
func (g *Grid) Vertices() []vec3.Vec {
	return g.vertices
}

// Len returns the number of distinct vertices assigned so far.
func (g *Grid) Len() int {
	return len(g.vertices)
}
