package meshio

import (
	"io"

	"github.com/hpinc/go3mf"

	"github.com/dcrane/isofield/mesh"
)

// Write3MF encodes m as a single-object 3MF package via go3mf, the
// teacher's dependency for solid-model interchange (go.mod). 3MF stores
// vertices/triangles as float32; precision loss beyond that is expected
// and is the format's tradeoff, not a bug here.
func Write3MF(w io.Writer, m mesh.IndexedMesh) error {
	model := new(go3mf.Model)
	model.Units = go3mf.UnitMillimeter

	obj := &go3mf.Object{
		ID:   1,
		Type: go3mf.ObjectTypeModel,
		Mesh: &go3mf.Mesh{},
	}
	obj.Mesh.Vertices.Vertex = make([]go3mf.Point3D, len(m.Vertices))
	for i, v := range m.Vertices {
		obj.Mesh.Vertices.Vertex[i] = go3mf.Point3D{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	obj.Mesh.Triangles.Triangle = make([]go3mf.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		obj.Mesh.Triangles.Triangle[i] = go3mf.Triangle{V1: uint32(f[0]), V2: uint32(f[1]), V3: uint32(f[2])}
	}

	model.Resources.Objects = append(model.Resources.Objects, obj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})

	return go3mf.NewEncoder(w).Encode(model)
}
