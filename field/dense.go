// Package field implements the two grid representations samplers fill and
// marching cubes consumes: the uniform DenseField and the narrow-band
// SparseField.
package field

import (
	"math"
	"runtime"
	"sync"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/graph"
	"github.com/dcrane/isofield/vec3"
)

// Dims is the per-axis point count of a dense grid.
type Dims struct {
	NI, NJ, NK int
}

// Dense is a uniform-grid sample buffer (spec.md §3/§4.6). Points count
// >= 2 per axis, so at least one cell exists per axis.
type Dense struct {
	Origin   vec3.Vec
	CellSize float64
	N        Dims
	Data     []float64
	Bounds   bbox.Box3
}

// FromBounds chooses ni/nj/nk = floor(dx/cellSize)+1 per axis (spec.md
// §4.6), failing on a degenerate (zero-extent or non-positive cell size)
// request.
func FromBounds(bb bbox.Box3, cellSize float64) (*Dense, error) {
	if cellSize <= 0 {
		return nil, errCustom("cell size must be positive")
	}
	size := bb.Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, errCustom("degenerate bounds: all axes must have positive extent")
	}
	n := Dims{
		NI: int(math.Floor(size.X/cellSize)) + 1,
		NJ: int(math.Floor(size.Y/cellSize)) + 1,
		NK: int(math.Floor(size.Z/cellSize)) + 1,
	}
	if n.NI < 2 || n.NJ < 2 || n.NK < 2 {
		return nil, errCustom("bounds too small for cell size: need at least 2 points per axis")
	}
	return &Dense{
		Origin:   bb.Min,
		CellSize: cellSize,
		N:        n,
		Data:     make([]float64, n.NI*n.NJ*n.NK),
		Bounds:   bb,
	}, nil
}

// Index returns the flat row-major index of grid point (i,j,k).
func (d *Dense) Index(i, j, k int) int {
	return k*d.N.NI*d.N.NJ + j*d.N.NI + i
}

// Point returns the physical coordinate of grid point (i,j,k).
func (d *Dense) Point(i, j, k int) vec3.Vec {
	return d.Origin.Add(vec3.Vec{X: float64(i), Y: float64(j), Z: float64(k)}.MulScalar(d.CellSize))
}

// Evaluator is the minimal capability a compiled graph.Graph exposes to a
// sampler: evaluate at a coordinate using caller-owned scratch.
type Evaluator interface {
	EvaluateAt(s *graph.Scratch, x, y, z float64) float64
}

// SampleFromGraph fills every grid point in parallel (one worker-pool
// task per batch of flat indices; no cross-cell synchronization), mirroring
// the teacher's evalProcessCh batch-dispatch idiom generalized from "one
// SDF3" to "one compiled graph" (spec.md §4.6/§5).
func (d *Dense) SampleFromGraph(g Evaluator) {
	total := len(d.Data)
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	chunk := (total + workers - 1) / workers
	if chunk == 0 {
		chunk = 1
	}
	var wg sync.WaitGroup
	for start := 0; start < total; start += chunk {
		end := start + chunk
		if end > total {
			end = total
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			scratch := &graph.Scratch{}
			ni, nj := d.N.NI, d.N.NJ
			for idx := start; idx < end; idx++ {
				k := idx / (ni * nj)
				rem := idx % (ni * nj)
				j := rem / ni
				i := rem % ni
				p := d.Point(i, j, k)
				d.Data[idx] = g.EvaluateAt(scratch, p.X, p.Y, p.Z)
			}
		}(start, end)
	}
	wg.Wait()
}

func (d *Dense) interior(i, j, k int) bool {
	return i > 0 && i < d.N.NI-1 && j > 0 && j < d.N.NJ-1 && k > 0 && k < d.N.NK-1
}

// Smooth performs `iters` double-buffered Laplacian-toward-mean passes:
// every interior point becomes (1-factor)*v + factor*(sum of 6
// face-neighbors / 6); boundary points copy through unchanged (spec.md
// §4.6). factor in (0,1] makes this a contraction toward the local mean
// (variance is non-increasing per iteration on the interior).
func (d *Dense) Smooth(factor float64, iters int) {
	if iters <= 0 {
		return
	}
	ni, nj, nk := d.N.NI, d.N.NJ, d.N.NK
	buf := make([]float64, len(d.Data))
	cur, next := d.Data, buf
	for it := 0; it < iters; it++ {
		for k := 0; k < nk; k++ {
			for j := 0; j < nj; j++ {
				for i := 0; i < ni; i++ {
					idx := k*ni*nj + j*ni + i
					if !d.interior(i, j, k) {
						next[idx] = cur[idx]
						continue
					}
					sum := cur[idx-1] + cur[idx+1] +
						cur[idx-ni] + cur[idx+ni] +
						cur[idx-ni*nj] + cur[idx+ni*nj]
					mean := sum / 6
					next[idx] = (1-factor)*cur[idx] + factor*mean
				}
			}
		}
		cur, next = next, cur
	}
	if &cur[0] != &d.Data[0] {
		copy(d.Data, cur)
	}
}

// Padding overwrites every boundary point (the three pairs of 2D grid
// faces) with v, capping open solids against the domain edge. This forces
// boundary *point* values, not an added halo of cells (spec.md §9 Open
// Question: documented, not changed).
func (d *Dense) Padding(v float64) {
	ni, nj, nk := d.N.NI, d.N.NJ, d.N.NK
	for k := 0; k < nk; k++ {
		for j := 0; j < nj; j++ {
			for i := 0; i < ni; i++ {
				if i == 0 || i == ni-1 || j == 0 || j == nj-1 || k == 0 || k == nk-1 {
					d.Data[d.Index(i, j, k)] = v
				}
			}
		}
	}
}

// Threshold zeroes any value with |v| < limit.
func (d *Dense) Threshold(limit float64) {
	for i, v := range d.Data {
		if math.Abs(v) < limit {
			d.Data[i] = 0
		}
	}
}

// CellCorners returns the 8 physical corner positions of cell (i,j,k) in
// the canonical marching-cubes ordering (spec.md §4.8 diagram).
func (d *Dense) CellCorners(i, j, k int) [8]vec3.Vec {
	b := bbox.New(d.Point(i, j, k), d.Point(i+1, j+1, k+1))
	return b.Corners()
}

// CellValues returns the 8 scalar values at CellCorners(i,j,k).
func (d *Dense) CellValues(i, j, k int) [8]float64 {
	idx := func(di, dj, dk int) float64 { return d.Data[d.Index(i+di, j+dj, k+dk)] }
	return [8]float64{
		idx(0, 0, 0), idx(1, 0, 0), idx(1, 1, 0), idx(0, 1, 0),
		idx(0, 0, 1), idx(1, 0, 1), idx(1, 1, 1), idx(0, 1, 1),
	}
}

// CellCount returns the number of cells per axis: (ni-1, nj-1, nk-1).
func (d *Dense) CellCount() Dims {
	return Dims{NI: d.N.NI - 1, NJ: d.N.NJ - 1, NK: d.N.NK - 1}
}

// ForEachCell calls fn once per cell with its corner positions and values
// (the iteration contract package mc consumes; spec.md §4.7). Always
// returns nil; the error return exists so Dense and Sparse share one
// mc.CellProvider interface.
func (d *Dense) ForEachCell(fn func(corners [8]vec3.Vec, values [8]float64)) error {
	cc := d.CellCount()
	for k := 0; k < cc.NK; k++ {
		for j := 0; j < cc.NJ; j++ {
			for i := 0; i < cc.NI; i++ {
				fn(d.CellCorners(i, j, k), d.CellValues(i, j, k))
			}
		}
	}
	return nil
}

func errCustom(msg string) error {
	return &CustomError{Message: msg}
}

// CustomError mirrors model.CustomError for field-level failures (invalid
// bounds, unsampled field) without creating an import cycle back into
// package model.
type CustomError struct {
	Message string
}

func (e *CustomError) Error() string { return e.Message }
