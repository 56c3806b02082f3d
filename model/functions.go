package model

import (
	"math"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/mesh"
	"github.com/dcrane/isofield/octree"
	"github.com/dcrane/isofield/vec3"
)

// Sphere is a centered-at-origin sphere SDF, grounded on
// original_source/engine/src/types/computation/distance_functions (the
// canonical length-minus-radius formula).
type Sphere struct {
	Radius float64
}

// Eval implements graph.Function.
func (s Sphere) Eval(x, y, z float64) float64 {
	return math.Sqrt(x*x+y*y+z*z) - s.Radius
}

// Box is a centered-at-origin box using the engine's box SDF convention
// (bbox.Box3.SignedDistance — see spec.md §9 Design Notes).
type Box struct {
	Size vec3.Vec
}

// Eval implements graph.Function.
func (b Box) Eval(x, y, z float64) float64 {
	half := b.Size.MulScalar(0.5)
	box := bbox.New(half.Neg(), half)
	return box.SignedDistance(vec3.Vec{X: x, Y: y, Z: z})
}

// Coordinate probes one axis of the query position, letting custom fields
// be built as arithmetic operations over x/y/z (spec.md §9 Polymorphism
// of components).
type Coordinate struct {
	Axis int // 0=x, 1=y, 2=z
}

// Eval implements graph.Function.
func (c Coordinate) Eval(x, y, z float64) float64 {
	switch c.Axis {
	case 0:
		return x
	case 1:
		return y
	default:
		return z
	}
}

// Gyroid is the triply-periodic gyroid minimal surface with equal period
// lengths in x, y and z, grounded on
// original_source/src/types/computation/functions/gyroid.rs. Not a true
// distance function, but scaled by Length/2 so its output stays a
// Lipschitz-bounded, SDF-like value (see field/sparse.go's bandIntersects).
type Gyroid struct {
	Length float64 // half the spatial period (the pattern repeats every 2*Length), equal in all axes
}

// Eval implements graph.Function.
func (g Gyroid) Eval(x, y, z float64) float64 {
	f := math.Pi / g.Length
	normalized := math.Sin(f*x)*math.Cos(f*y) + math.Sin(f*y)*math.Cos(f*z) + math.Sin(f*z)*math.Cos(f*x)
	return g.Length / 2 * normalized
}

// SchwarzP is the triply-periodic Schwarz-P minimal surface with equal
// period lengths in x, y and z, grounded on
// original_source/src/types/computation/functions/schwarz.rs. Scaled by
// half the period for the same Lipschitz-bounded reason as Gyroid.
type SchwarzP struct {
	Length float64
}

// Eval implements graph.Function.
func (s SchwarzP) Eval(x, y, z float64) float64 {
	f := 2 * math.Pi / s.Length
	normalized := math.Cos(f*x) + math.Cos(f*y) + math.Cos(f*z)
	return s.Length / 2 * normalized
}

// Neovius is the triply-periodic Neovius minimal surface with equal
// period lengths in x, y and z, grounded on
// original_source/src/types/computation/functions/neovius.rs. The /7.5
// normalization and 0.368*length amplitude scale keep the output
// Lipschitz-bounded for the same reason as Gyroid and SchwarzP.
type Neovius struct {
	Length float64
}

// Eval implements graph.Function.
func (n Neovius) Eval(x, y, z float64) float64 {
	f := 2 * math.Pi / n.Length
	cx, cy, cz := math.Cos(f*x), math.Cos(f*y), math.Cos(f*z)
	normalized := (3*(cx+cy+cz) + 4*cx*cy*cz) / 7.5
	return 0.368 * n.Length * normalized
}

// MeshSDF closes the loop from §4.3/§4.4 back into the graph: a mesh's
// octree-accelerated signed distance becomes a position-dependent
// Function, letting graphs reference externally supplied meshes as
// ordinary components (grounded on
// original_source/src/types/computation/functions/mesh_file.rs).
type MeshSDF struct {
	Tree *octree.Octree[mesh.QueryTriangle]
}

// NewMeshSDF builds a MeshSDF function over m's triangles (computing
// vertex normals first if not already baked in).
func NewMeshSDF(m mesh.IndexedMesh, maxObjectsPerNode, maxDepth int) MeshSDF {
	if m.Normals == nil {
		m.ComputeNormals()
	}
	return MeshSDF{Tree: m.ToOctree(maxObjectsPerNode, maxDepth)}
}

// Eval implements graph.Function.
func (f MeshSDF) Eval(x, y, z float64) float64 {
	d, ok := octree.SignedDistance[mesh.QueryTriangle](f.Tree, vec3.Vec{X: x, Y: y, Z: z})
	if !ok {
		return math.Inf(1)
	}
	return d
}
