// Command isofield-demo runs a sphere SDF through the full pipeline —
// compile -> dense sample -> marching cubes -> indexed mesh -> OBJ —
// mirroring the teacher's examples/spiral end-to-end shape generalized
// from a 2D spiral + DXF export to a 3D sphere + OBJ export.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/dcrane/isofield/bbox"
	"github.com/dcrane/isofield/meshio"
	"github.com/dcrane/isofield/model"
	"github.com/dcrane/isofield/sample"
	"github.com/dcrane/isofield/vec3"
)

func main() {
	radius := flag.Float64("radius", 4.0, "sphere radius")
	cellSize := flag.Float64("cell-size", 0.25, "dense grid cell size")
	iso := flag.Float64("iso", 0.0, "iso-surface level")
	weldTol := flag.Float64("weld-tol", 0, "vertex weld tolerance (0 = vec3.Tolerance)")
	out := flag.String("out", "isofield-demo.obj", "output OBJ path")
	flipYZ := flag.Bool("flip-yz", false, "swap Y/Z axes on export")
	flag.Parse()

	m := model.New()
	sphereTag, err := m.AddFunction("sphere", model.Sphere{Radius: *radius})
	if err != nil {
		log.Fatalf("isofield-demo: building model: %v", err)
	}

	g, err := m.Compile(sphereTag)
	if err != nil {
		log.Fatalf("isofield-demo: compiling graph: %v", err)
	}

	margin := *radius * 1.25
	bounds := bbox.Box3{
		Min: vec3.Vec{X: -margin, Y: -margin, Z: -margin},
		Max: vec3.Vec{X: margin, Y: margin, Z: margin},
	}

	drv := &sample.Dense{Bounds: bounds, CellSize: *cellSize}
	info, err := drv.Info()
	if err != nil {
		log.Fatalf("isofield-demo: %v", err)
	}
	log.Printf("sampling dense grid %s over bounds %+v", info, bounds)

	if err := drv.Sample(g); err != nil {
		log.Fatalf("isofield-demo: sampling: %v", err)
	}

	surf, err := drv.ExtractSurface(*iso, *weldTol)
	if err != nil {
		log.Fatalf("isofield-demo: extracting surface: %v", err)
	}
	log.Printf("extracted mesh: %d vertices, %d faces", len(surf.Vertices), len(surf.Faces))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("isofield-demo: %v", err)
	}
	defer f.Close()

	flip := meshio.NoFlip
	if *flipYZ {
		flip = meshio.FlipYZ
	}
	if err := meshio.WriteOBJ(f, surf, flip); err != nil {
		log.Fatalf("isofield-demo: writing OBJ: %v", err)
	}
	log.Printf("wrote %s", *out)
}
