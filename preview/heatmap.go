// Package preview renders debug 2D cross-sections of a field or mesh: a
// heatmap image of a field slice and an SVG wireframe of a mesh's
// triangle edges projected onto the XY plane over its bounding-box
// outline. Never on the sampling hot path.
package preview

import (
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/dcrane/isofield/field"
	"github.com/dcrane/isofield/graph"
)

// pixelJob is one (px, py) heatmap pixel to evaluate, grounded on the
// teacher's jobInternal (render/dev/implcommon.go), generalized from
// "SDF2 distance at pixel" to "graph value at pixel".
type pixelJob struct {
	px, py int
	x, y   float64
}

type pixelResult struct {
	px, py int
	c      color.RGBA
}

// Ramp maps a normalized value in [0,1] to a color; callers may supply a
// custom ramp (e.g. diverging red/blue for signed fields).
type Ramp func(t float64) color.RGBA

// DefaultRamp is a blue-to-red linear ramp, blue at 0 and red at 1.
func DefaultRamp(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(255 * t),
		G: 0,
		B: uint8(255 * (1 - t)),
		A: 255,
	}
}

// RenderZSliceHeatmap samples g on the z=z0 plane over [xmin,xmax]x
// [ymin,ymax] at the given pixel resolution and writes width x height
// RGBA pixels colored by ramp, after normalizing sampled values against
// [minVal, maxVal]. Work is farmed out over a worker pool sized to
// runtime.NumCPU(), mirroring the teacher's job/result channel pipeline
// (render/dev/implcommon.go) generalized from a cancellable interactive
// renderer to a one-shot batch render (no partial-render channel, no
// context cancellation — this is a debug tool, not an interactive GUI).
func RenderZSliceHeatmap(g field.Evaluator, width, height int, xmin, xmax, ymin, ymax, z0, minVal, maxVal float64, ramp Ramp) (*image.RGBA, error) {
	if ramp == nil {
		ramp = DefaultRamp
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	jobs := make(chan pixelJob)
	results := make(chan pixelResult)
	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scratch := &graph.Scratch{}
			for j := range jobs {
				v := g.EvaluateAt(scratch, j.x, j.y, z0)
				t := 0.0
				if maxVal > minVal {
					t = (v - minVal) / (maxVal - minVal)
				}
				results <- pixelResult{px: j.px, py: j.py, c: ramp(t)}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for py := 0; py < height; py++ {
			for px := 0; px < width; px++ {
				u := float64(px) / float64(width-1)
				v := float64(py) / float64(height-1)
				jobs <- pixelJob{
					px: px, py: py,
					x: xmin + u*(xmax-xmin),
					y: ymin + v*(ymax-ymin),
				}
			}
		}
		close(jobs)
	}()

	for r := range results {
		img.SetRGBA(r.px, r.py, r.c)
	}
	return img, nil
}

// RenderDenseSlice heatmaps the k-th XY layer of an already-sampled
// Dense field, without re-evaluating the graph.
func RenderDenseSlice(d *field.Dense, k int, minVal, maxVal float64, ramp Ramp) *image.RGBA {
	if ramp == nil {
		ramp = DefaultRamp
	}
	img := image.NewRGBA(image.Rect(0, 0, d.N.NI, d.N.NJ))
	for j := 0; j < d.N.NJ; j++ {
		for i := 0; i < d.N.NI; i++ {
			v := d.Data[d.Index(i, j, k)]
			t := 0.0
			if maxVal > minVal {
				t = (v - minVal) / (maxVal - minVal)
			}
			img.SetRGBA(i, d.N.NJ-1-j, ramp(t))
		}
	}
	return img
}
