// Package meshio implements mesh and field export to the external
// collaborator formats spec.md §6 names: OBJ (vertex/face/normal, with
// an axis-flip flag), 3MF, DXF wireframe cross-sections, and CSV field
// dumps. None of this is on the sampling hot path.
package meshio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dcrane/isofield/mesh"
	"github.com/dcrane/isofield/vec3"
)

// FlipYZ, when passed to WriteOBJ, swaps Y and Z on every written vertex
// and normal, for consumers that use a Z-up axis convention.
type AxisFlip bool

const (
	NoFlip AxisFlip = false
	FlipYZ AxisFlip = true
)

func flip(v vec3.Vec, f AxisFlip) vec3.Vec {
	if !f {
		return v
	}
	return vec3.Vec{X: v.X, Y: v.Z, Z: v.Y}
}

// WriteOBJ writes m as a Wavefront OBJ: "v" lines for vertices, "vn"
// lines for normals (if m.Normals is populated), and 1-indexed "f" lines
// referencing vertex/normal pairs when normals are present.
func WriteOBJ(w io.Writer, m mesh.IndexedMesh, flipAxis AxisFlip) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		p := flip(v, flipAxis)
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	for _, n := range m.Normals {
		p := flip(n, flipAxis)
		if _, err := fmt.Fprintf(bw, "vn %g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		if m.Normals != nil {
			if _, err := fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n",
				f[0]+1, f[0]+1, f[1]+1, f[1]+1, f[2]+1, f[2]+1); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadOBJ parses vertex ("v") and triangular face ("f") lines from an
// OBJ stream into an IndexedMesh. Normals ("vn") are attached in file
// order as per-vertex normals only when their count equals the vertex
// count; the normal indices in "f" references are parsed but not used to
// pair normals with vertices. Faces with fewer than 3 vertex references
// are skipped. This is a minimal reader
// covering the subset WriteOBJ emits plus plain "f a b c" faces, not a
// full OBJ grammar (materials, groups, etc. are not needed by spec.md
// §6).
func ReadOBJ(r io.Reader, flipAxis AxisFlip) (mesh.IndexedMesh, error) {
	sc := newObjScanner(r)
	var verts []vec3.Vec
	var normals []vec3.Vec
	var faces []mesh.Face
	var faceNormalIdx []int

	for sc.Scan() {
		line := sc.Fields()
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case "v":
			v, err := parseVec3(line[1:])
			if err != nil {
				return mesh.IndexedMesh{}, err
			}
			verts = append(verts, flip(v, flipAxis))
		case "vn":
			n, err := parseVec3(line[1:])
			if err != nil {
				return mesh.IndexedMesh{}, err
			}
			normals = append(normals, flip(n, flipAxis))
		case "f":
			if len(line) < 4 {
				continue
			}
			var idx [3]uint32
			var nidx [3]int
			for i := 0; i < 3; i++ {
				vi, ni, err := parseFaceToken(line[1+i])
				if err != nil {
					return mesh.IndexedMesh{}, err
				}
				idx[i] = uint32(vi - 1)
				nidx[i] = ni - 1
			}
			faces = append(faces, mesh.Face(idx))
			faceNormalIdx = append(faceNormalIdx, nidx[0])
		}
	}
	if err := sc.Err(); err != nil {
		return mesh.IndexedMesh{}, err
	}

	out := mesh.IndexedMesh{Vertices: verts, Faces: faces}
	if len(normals) > 0 && len(normals) == len(verts) {
		out.Normals = normals
	}
	_ = faceNormalIdx // per-corner normal indices are not modeled by IndexedMesh (one normal per vertex)
	return out, nil
}
