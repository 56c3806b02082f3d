package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/dcrane/isofield/bbox"
)

// AnnotateAxes draws a tick grid (via draw2d, antialiased) and numeric
// X-axis labels along the bottom edge (via freetype, rasterizing the
// bundled gofont/goregular face) over a previously rendered heatmap, so a
// debug PNG is readable without an external plotting tool. The Y axis
// gets grid lines but no labels. ticks is the number of divisions per
// axis.
func AnnotateAxes(img *image.RGBA, bb bbox.Box3, ticks int) error {
	if ticks < 1 {
		ticks = 1
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(color.RGBA{R: 200, G: 200, B: 200, A: 160})
	gc.SetLineWidth(1)
	for t := 0; t <= ticks; t++ {
		x := float64(t) * float64(w) / float64(ticks)
		gc.MoveTo(x, 0)
		gc.LineTo(x, float64(h))
		y := float64(t) * float64(h) / float64(ticks)
		gc.MoveTo(0, y)
		gc.LineTo(float64(w), y)
	}
	gc.Stroke()

	face, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return err
	}
	fc := freetype.NewContext()
	fc.SetDPI(72)
	fc.SetFont(face)
	fc.SetFontSize(10)
	fc.SetClip(img.Bounds())
	fc.SetDst(img)
	fc.SetSrc(image.NewUniform(color.Black))

	size := bb.Size()
	for t := 0; t <= ticks; t++ {
		xv := bb.Min.X + float64(t)*size.X/float64(ticks)
		px := float64(t) * float64(w) / float64(ticks)
		pt := freetype.Pt(int(px)+2, h-2)
		if _, err := fc.DrawString(fmt.Sprintf("%.3g", xv), pt); err != nil {
			return err
		}
	}
	return nil
}
