// Package mc extracts an iso-surface from a sampled scalar field using
// the classical marching-cubes algorithm, generalized from the teacher's
// single SDF3-layer-cache walk (render/march3.go) to any cell provider:
// a dense grid (field.Dense) or a narrow-band sparse block tree
// (field.Sparse), per spec.md §4.8/§4.9.
package mc

import (
	"runtime"
	"sync"

	"github.com/dcrane/isofield/mesh"
	"github.com/dcrane/isofield/triangle"
	"github.com/dcrane/isofield/vec3"
)

// snapEpsilon is the tolerance at which an edge crossing snaps to one of
// its two endpoints instead of linearly interpolating (spec.md §4.8).
const snapEpsilon = 1e-5

// CellProvider exposes the per-cell (8 corner positions, 8 corner
// values) shape marching cubes consumes. field.Dense and field.Sparse
// both implement it.
type CellProvider interface {
	ForEachCell(fn func(corners [8]vec3.Vec, values [8]float64)) error
}

type cell struct {
	corners [8]vec3.Vec
	values  [8]float64
}

// ExtractSurface walks every cell provider cell, triangulates its
// crossing of the iso level, and welds the resulting triangle soup into
// an IndexedMesh with weldTol (vec3.Tolerance if weldTol<=0). Triangles
// are generated with a cell-parallel pass (spec.md §5) and reduce-
// concatenated in provider iteration order before welding, keeping mesh
// output deterministic regardless of worker scheduling.
func ExtractSurface(provider CellProvider, iso, weldTol float64) (mesh.IndexedMesh, error) {
	var cells []cell
	err := provider.ForEachCell(func(corners [8]vec3.Vec, values [8]float64) {
		cells = append(cells, cell{corners: corners, values: values})
	})
	if err != nil {
		return mesh.IndexedMesh{}, err
	}
	if len(cells) == 0 {
		return mesh.IndexedMesh{}, nil
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > len(cells) {
		workers = len(cells)
	}
	chunk := (len(cells) + workers - 1) / workers
	results := make([][]triangle.Triangle, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(cells) {
			end = len(cells)
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			var local []triangle.Triangle
			for _, c := range cells[start:end] {
				local = append(local, cellTriangles(c.corners, c.values, iso)...)
			}
			results[w] = local
		}(w, start, end)
	}
	wg.Wait()

	var soup []triangle.Triangle
	for _, r := range results {
		soup = append(soup, r...)
	}

	tol := weldTol
	if tol <= 0 {
		tol = vec3.Tolerance
	}
	return mesh.FromTriangles(soup, tol), nil
}

// cellTriangles triangulates one cube against the iso level, snapping
// edge crossings within snapEpsilon of either endpoint (spec.md §4.8).
func cellTriangles(p [8]vec3.Vec, v [8]float64, iso float64) []triangle.Triangle {
	index := 0
	for i := 0; i < 8; i++ {
		if v[i] < iso {
			index |= 1 << uint(i)
		}
	}
	if edgeTable[index] == 0 {
		return nil
	}

	var points [12]vec3.Vec
	for i := 0; i < 12; i++ {
		bit := 1 << uint(i)
		if edgeTable[index]&bit != 0 {
			a := edgePairTable[i][0]
			b := edgePairTable[i][1]
			points[i] = interpolate(p[a], p[b], v[a], v[b], iso)
		}
	}

	table := triangleTable[index]
	count := len(table) / 3
	out := make([]triangle.Triangle, 0, count)
	for i := 0; i < count; i++ {
		// reversed index order (2,1,0) matches the winding convention of
		// the classical Bourke table (spec.md §4.8).
		t := triangle.New(points[table[i*3+2]], points[table[i*3+1]], points[table[i*3+0]])
		if !t.Degenerate(0) {
			out = append(out, t)
		}
	}
	return out
}

// interpolate finds the point on edge (p1,p2) where the field crosses
// iso, snapping to an endpoint when its value is within snapEpsilon of
// iso (spec.md §4.8 edge case: avoids producing zero-length edges from
// floating-point jitter at an exact corner hit).
func interpolate(p1, p2 vec3.Vec, v1, v2, iso float64) vec3.Vec {
	if abs(iso-v1) < snapEpsilon || abs(v1-v2) < snapEpsilon {
		return p1
	}
	if abs(iso-v2) < snapEpsilon {
		return p2
	}
	t := (iso - v1) / (v2 - v1)
	return p1.Add(p2.Sub(p1).MulScalar(t))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
