// Package sample provides the thin drivers that tie a compiled
// graph.Graph to a field representation and on to iso-surface
// extraction, mirroring the teacher's MarchingCubesUniform/
// MarchingTetrahedraUniform Info/Render split (render/march3.go,
// render/marchfe.go) generalized from "one renderer per element type" to
// "one driver per field representation" (spec.md §4.9).
package sample

import (
	"fmt"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/field"
	"github.com/dcrane/isofield/graph"
	"github.com/dcrane/isofield/mc"
	"github.com/dcrane/isofield/mesh"
)

// Dense drives a uniform-grid sampling + extraction pipeline.
type Dense struct {
	Bounds   bbox.Box3
	CellSize float64

	field *field.Dense
}

// Info describes the dimensions that will be sampled, without doing any
// work, mirroring the teacher's Info/Render split.
func (d *Dense) Info() (string, error) {
	f, err := field.FromBounds(d.Bounds, d.CellSize)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%dx%dx%d", f.N.NI, f.N.NJ, f.N.NK), nil
}

// Sample fills the grid by evaluating g at every grid point.
func (d *Dense) Sample(g *graph.Graph) error {
	f, err := field.FromBounds(d.Bounds, d.CellSize)
	if err != nil {
		return err
	}
	f.SampleFromGraph(g)
	d.field = f
	return nil
}

// Field exposes the underlying sampled grid (e.g. for Smooth/Padding/
// Threshold before extraction).
func (d *Dense) Field() *field.Dense {
	return d.field
}

// ExtractSurface triangulates the sampled grid at iso, failing with a
// Custom error if Sample has not been called yet (spec.md §7).
func (d *Dense) ExtractSurface(iso, weldTol float64) (mesh.IndexedMesh, error) {
	if d.field == nil {
		return mesh.IndexedMesh{}, &field.CustomError{Message: "dense field has not been sampled yet"}
	}
	return mc.ExtractSurface(d.field, iso, weldTol)
}

// Sparse drives a narrow-band sparse block-tree sampling + extraction
// pipeline.
type Sparse struct {
	Bounds           bbox.Box3
	CellSize         float64
	SInternal, SLeaf int
	Mode             field.SamplingMode
	MinVal, MaxVal   float64

	sp *field.Sparse
}

// Info describes the root-hash tile layout, without sampling.
func (s *Sparse) Info() (string, error) {
	sp, err := field.NewSparse(s.Bounds, s.CellSize, s.SInternal, s.SLeaf)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("tile_step=%.4g sInternal=%d sLeaf=%d", sp.CellSize*float64(sp.SLeaf-1)*float64(sp.SInternal), s.SInternal, s.SLeaf), nil
}

// Sample initializes the block tree and populates it via narrow-band
// activation against g.
func (s *Sparse) Sample(g *graph.Graph) error {
	sp, err := field.NewSparse(s.Bounds, s.CellSize, s.SInternal, s.SLeaf)
	if err != nil {
		return err
	}
	if err := sp.Populate(g, s.Mode, s.MinVal, s.MaxVal); err != nil {
		return err
	}
	s.sp = sp
	return nil
}

// ExtractSurface triangulates the sampled sparse field at iso. Fails
// with a Custom error if iso is outside [MinVal, MaxVal] (spec.md §7
// "Sparse sampler with iso_val not in [min_val, max_val] returns Custom
// error") or if Sample has not been called yet.
func (s *Sparse) ExtractSurface(iso, weldTol float64) (mesh.IndexedMesh, error) {
	if s.sp == nil {
		return mesh.IndexedMesh{}, &field.CustomError{Message: "sparse field has not been sampled yet"}
	}
	if iso < s.MinVal || iso > s.MaxVal {
		return mesh.IndexedMesh{}, &field.CustomError{Message: fmt.Sprintf("iso %g outside sampled narrow band [%g, %g]", iso, s.MinVal, s.MaxVal)}
	}
	return mc.ExtractSurface(s.sp, iso, weldTol)
}
