package field

import (
	"math"
	"sync"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/graph"
	"github.com/dcrane/isofield/vec3"
)

// validBlockSize reports whether s is a legal internal/leaf tile dimension
// (spec.md §3/§9: S in {2,4,8,16,32,64}).
func validBlockSize(s int) bool {
	switch s {
	case 2, 4, 8, 16, 32, 64:
		return true
	}
	return false
}

// SamplingMode selects how a child cell's intersection with the narrow
// band is tested (spec.md §4.7).
type SamplingMode int

const (
	// Centre tests only the child cell's centroid against a Lipschitz-1
	// half-diagonal bound.
	Centre SamplingMode = iota
	// Corners tests all 8 corners of the child cell.
	Corners
)

// childKind is the tagged variant of a sparse-field child slot.
type childKind int

const (
	childEmpty childKind = iota
	childConstant
	childLeaf
)

// leaf is a dense L^3 block of sampled values.
type leaf struct {
	bounds bbox.Box3
	size   int // L
	values []float64
}

func (l *leaf) index(i, j, k int) int {
	return k*l.size*l.size + j*l.size + i
}

// child is one internal-node slot: Empty | Constant(bounds,value) |
// Leaf(*leaf).
type child struct {
	kind   childKind
	bounds bbox.Box3
	value  float64
	leaf   *leaf
}

// internalNode is one root-hash tile: bounds plus a dense S^3 array of
// children.
type internalNode struct {
	bounds   bbox.Box3
	s        int // Sinternal
	children []child
}

func (n *internalNode) index(i, j, k int) int {
	return k*n.s*n.s + j*n.s + i
}

// tileKey is the root-hash coordinate of one internal-node tile.
type tileKey struct{ I, J, K int }

// Sparse is a two-level block tree: root hash (tileKey -> *internalNode)
// over axis-aligned tiles, narrow-band-activated children converted to
// dense leaves (spec.md §3/§4.7).
type Sparse struct {
	CellSize   float64
	SInternal  int
	SLeaf      int
	Bounds     bbox.Box3
	tileStep   float64
	childStep  float64
	root       map[tileKey]*internalNode
	sampled    bool
}

// NewSparse initializes the root-hash over bb: one InternalNode per tile
// intersecting bb, with every child marked Constant(childBounds, 0) iff
// its bounds intersect bb (spec.md §4.7 Initialization).
func NewSparse(bb bbox.Box3, cellSize float64, sInternal, sLeaf int) (*Sparse, error) {
	if cellSize <= 0 {
		return nil, errCustom("cell size must be positive")
	}
	if !validBlockSize(sInternal) || !validBlockSize(sLeaf) {
		return nil, errCustom("block sizes must be one of {2,4,8,16,32,64}")
	}
	size := bb.Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, errCustom("degenerate bounds: all axes must have positive extent")
	}

	childStep := cellSize * float64(sLeaf-1)
	tileStep := childStep * float64(sInternal)

	tileCounts := [3]int{
		int(math.Ceil(size.X / tileStep)),
		int(math.Ceil(size.Y / tileStep)),
		int(math.Ceil(size.Z / tileStep)),
	}
	for i := range tileCounts {
		if tileCounts[i] < 1 {
			tileCounts[i] = 1
		}
	}

	s := &Sparse{
		CellSize:  cellSize,
		SInternal: sInternal,
		SLeaf:     sLeaf,
		Bounds:    bb,
		tileStep:  tileStep,
		childStep: childStep,
		root:      make(map[tileKey]*internalNode),
	}

	for ti := 0; ti < tileCounts[0]; ti++ {
		for tj := 0; tj < tileCounts[1]; tj++ {
			for tk := 0; tk < tileCounts[2]; tk++ {
				origin := bb.Min.Add(vec3.Vec{X: float64(ti), Y: float64(tj), Z: float64(tk)}.MulScalar(tileStep))
				tBounds := bbox.New(origin, origin.Add(vec3.Vec{X: tileStep, Y: tileStep, Z: tileStep}))
				n := &internalNode{bounds: tBounds, s: sInternal, children: make([]child, sInternal*sInternal*sInternal)}
				for ci := 0; ci < sInternal; ci++ {
					for cj := 0; cj < sInternal; cj++ {
						for ck := 0; ck < sInternal; ck++ {
							cOrigin := origin.Add(vec3.Vec{X: float64(ci), Y: float64(cj), Z: float64(ck)}.MulScalar(childStep))
							cBounds := bbox.New(cOrigin, cOrigin.Add(vec3.Vec{X: childStep, Y: childStep, Z: childStep}))
							idx := n.index(ci, cj, ck)
							if cBounds.Intersects(bb) {
								n.children[idx] = child{kind: childConstant, bounds: cBounds, value: 0}
							} else {
								n.children[idx] = child{kind: childEmpty, bounds: cBounds}
							}
						}
					}
				}
				s.root[tileKey{ti, tj, tk}] = n
			}
		}
	}
	return s, nil
}

// bandIntersects implements the narrow-band activation predicate of
// spec.md §4.7, assuming the sampled function is Lipschitz-1 (a distance
// field): under Centre, only the cell centroid is tested against its
// half-diagonal bound; under Corners, all 8 corners are tested.
func bandIntersects(mode SamplingMode, b bbox.Box3, g Evaluator, s *graph.Scratch, minVal, maxVal float64) bool {
	test := func(p vec3.Vec, h float64) bool {
		v := g.EvaluateAt(s, p.X, p.Y, p.Z)
		return v-h <= maxVal && v+h >= minVal
	}
	h := b.HalfDiagonal()
	if mode == Centre {
		return test(b.Center(), h)
	}
	for _, c := range b.Corners() {
		if test(c, h) {
			return true
		}
	}
	return false
}

// Populate runs narrow-band activation and dense leaf sampling: children
// of one internal node are tested/populated in parallel; internal nodes
// themselves are processed sequentially in the outer loop (spec.md §4.7/§5).
func (s *Sparse) Populate(g Evaluator, mode SamplingMode, minVal, maxVal float64) error {
	if maxVal < minVal {
		return errCustom("invalid narrow band: max_val < min_val")
	}
	for _, n := range s.root {
		var wg sync.WaitGroup
		for idx := range n.children {
			if n.children[idx].kind != childConstant {
				continue
			}
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				scratch := &graph.Scratch{}
				c := &n.children[idx]
				if !bandIntersects(mode, c.bounds, g, scratch, minVal, maxVal) {
					c.value = g.EvaluateAt(scratch, c.bounds.Center().X, c.bounds.Center().Y, c.bounds.Center().Z)
					return
				}
				c.leaf = sampleLeaf(c.bounds, s.CellSize, s.SLeaf, g, scratch)
				c.kind = childLeaf
			}(idx)
		}
		wg.Wait()
	}
	s.sampled = true
	return nil
}

func sampleLeaf(bounds bbox.Box3, cellSize float64, sLeaf int, g Evaluator, scratch *graph.Scratch) *leaf {
	l := &leaf{bounds: bounds, size: sLeaf, values: make([]float64, sLeaf*sLeaf*sLeaf)}
	for k := 0; k < sLeaf; k++ {
		for j := 0; j < sLeaf; j++ {
			for i := 0; i < sLeaf; i++ {
				p := bounds.Min.Add(vec3.Vec{X: float64(i), Y: float64(j), Z: float64(k)}.MulScalar(cellSize))
				l.values[l.index(i, j, k)] = g.EvaluateAt(scratch, p.X, p.Y, p.Z)
			}
		}
	}
	return l
}

// ForEachCell exposes the same per-cell (corners, values) shape
// DenseField does (spec.md §4.7 Iteration contract): dense (L-1)^3 cells
// per Leaf child, one constant-value cell per un-refined Constant child,
// nothing for Empty children.
func (s *Sparse) ForEachCell(fn func(corners [8]vec3.Vec, values [8]float64)) error {
	if !s.sampled {
		return errCustom("sparse field has not been sampled yet")
	}
	for _, n := range s.root {
		for _, c := range n.children {
			switch c.kind {
			case childEmpty:
				continue
			case childConstant:
				corners := c.bounds.Corners()
				var vals [8]float64
				for i := range vals {
					vals[i] = c.value
				}
				fn(corners, vals)
			case childLeaf:
				l := c.leaf
				for k := 0; k < l.size-1; k++ {
					for j := 0; j < l.size-1; j++ {
						for i := 0; i < l.size-1; i++ {
							p0 := l.bounds.Min.Add(vec3.Vec{X: float64(i), Y: float64(j), Z: float64(k)}.MulScalar(s.CellSize))
							p1 := l.bounds.Min.Add(vec3.Vec{X: float64(i + 1), Y: float64(j + 1), Z: float64(k + 1)}.MulScalar(s.CellSize))
							corners := bbox.New(p0, p1).Corners()
							idx := func(di, dj, dk int) float64 { return l.values[l.index(i+di, j+dj, k+dk)] }
							vals := [8]float64{
								idx(0, 0, 0), idx(1, 0, 0), idx(1, 1, 0), idx(0, 1, 0),
								idx(0, 0, 1), idx(1, 0, 1), idx(1, 1, 1), idx(0, 1, 1),
							}
							fn(corners, vals)
						}
					}
				}
			}
		}
	}
	return nil
}
