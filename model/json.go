package model

import (
	"encoding/json"
	"fmt"

	"github.com/dcrane/isofield/graph"
	"github.com/dcrane/isofield/vec3"
)

func vecFromArray(a [3]float64) vec3.Vec {
	return vec3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

// jsonComponent is the wire shape of one tagged component: a type
// discriminator plus whichever parameter set that type needs, and its
// wired input tags (unwired slots serialize as "").
//
// This is the in-memory round-trip contract SPEC_FULL.md §6 calls for,
// not a promise of cross-version wire stability: adding a field to a
// Function/Operation changes the shape old JSON decodes into.
type jsonComponent struct {
	Type     string     `json:"type"`
	Constant float64    `json:"constant,omitempty"`
	N        int        `json:"n,omitempty"`
	K        float64    `json:"k,omitempty"`
	Radius   float64    `json:"radius,omitempty"`
	Size     [3]float64 `json:"size"`
	Axis     int        `json:"axis,omitempty"`
	Length   float64    `json:"length,omitempty"`
	Distance float64    `json:"distance,omitempty"`
	T        float64    `json:"t,omitempty"`
	Inputs   []string   `json:"inputs,omitempty"`
}

type jsonModel struct {
	Order         []string                 `json:"order"`
	Components    map[string]jsonComponent `json:"components"`
	DefaultOutput string                   `json:"defaultOutput"`
}

// MarshalJSON encodes every component in insertion order by type tag and
// parameters, plus its wired inputs. MeshSDF components cannot be
// serialized (they carry a built octree over externally supplied mesh
// data, not plain parameters) and cause an error instead of silently
// dropping the component.
func (m *ImplicitModel) MarshalJSON() ([]byte, error) {
	jm := jsonModel{
		Order:         m.order,
		Components:    make(map[string]jsonComponent, len(m.components)),
		DefaultOutput: m.defaultOutput,
	}
	for _, tag := range m.order {
		c := m.components[tag]
		jc, err := encodeComponent(c)
		if err != nil {
			return nil, fmt.Errorf("model: encoding component %q: %w", tag, err)
		}
		jc.Inputs = append([]string(nil), m.inputs[tag]...)
		jm.Components[tag] = jc
	}
	return json.Marshal(jm)
}

func encodeComponent(c Component) (jsonComponent, error) {
	switch c.Kind {
	case KindConstant:
		return jsonComponent{Type: "constant", Constant: c.Constant}, nil
	case KindFunction:
		switch f := c.Fn.(type) {
		case Sphere:
			return jsonComponent{Type: "sphere", Radius: f.Radius}, nil
		case Box:
			return jsonComponent{Type: "box", Size: [3]float64{f.Size.X, f.Size.Y, f.Size.Z}}, nil
		case Coordinate:
			return jsonComponent{Type: "coordinate", Axis: f.Axis}, nil
		case Gyroid:
			return jsonComponent{Type: "gyroid", Length: f.Length}, nil
		case SchwarzP:
			return jsonComponent{Type: "schwarzP", Length: f.Length}, nil
		case Neovius:
			return jsonComponent{Type: "neovius", Length: f.Length}, nil
		default:
			return jsonComponent{}, fmt.Errorf("unsupported function type %T (e.g. MeshSDF is not JSON-serializable)", f)
		}
	case KindOperation:
		switch op := c.Op.(type) {
		case Union:
			return jsonComponent{Type: "union", N: op.N}, nil
		case Intersect:
			return jsonComponent{Type: "intersect", N: op.N}, nil
		case Difference:
			return jsonComponent{Type: "difference"}, nil
		case SmoothUnion:
			return jsonComponent{Type: "smoothUnion", N: op.N, K: op.K}, nil
		case SmoothIntersect:
			return jsonComponent{Type: "smoothIntersect", N: op.N, K: op.K}, nil
		case SmoothDifference:
			return jsonComponent{Type: "smoothDifference", K: op.K}, nil
		case Offset:
			return jsonComponent{Type: "offset", Distance: op.Distance}, nil
		case Thickness:
			return jsonComponent{Type: "thickness", T: op.T}, nil
		case Add:
			return jsonComponent{Type: "add", N: op.N}, nil
		case Multiply:
			return jsonComponent{Type: "multiply", N: op.N}, nil
		case Min:
			return jsonComponent{Type: "min", N: op.N}, nil
		case Max:
			return jsonComponent{Type: "max", N: op.N}, nil
		default:
			return jsonComponent{}, fmt.Errorf("unsupported operation type %T", op)
		}
	default:
		return jsonComponent{}, fmt.Errorf("unknown component kind %v", c.Kind)
	}
}

// UnmarshalJSON rebuilds an ImplicitModel from MarshalJSON's output:
// components are re-added in their original insertion order (so
// acyclicity checks see the same DAG-building order) and then every
// input slot is re-wired.
func (m *ImplicitModel) UnmarshalJSON(data []byte) error {
	var jm jsonModel
	if err := json.Unmarshal(data, &jm); err != nil {
		return err
	}
	*m = *New()

	for _, tag := range jm.Order {
		jc, ok := jm.Components[tag]
		if !ok {
			return fmt.Errorf("model: tag %q listed in order but missing from components", tag)
		}
		if err := addDecoded(m, tag, jc); err != nil {
			return fmt.Errorf("model: decoding component %q: %w", tag, err)
		}
	}
	for _, tag := range jm.Order {
		jc := jm.Components[tag]
		for i, src := range jc.Inputs {
			if src == unwired {
				continue
			}
			if err := m.AddInput(tag, src, i); err != nil {
				return fmt.Errorf("model: wiring input %d of %q: %w", i, tag, err)
			}
		}
	}
	if jm.DefaultOutput != "" {
		m.defaultOutput = jm.DefaultOutput
	}
	return nil
}

func addDecoded(m *ImplicitModel, tag string, jc jsonComponent) error {
	var (
		fn graph.Function
		op graph.Operation
	)
	switch jc.Type {
	case "constant":
		_, err := m.AddConstant(tag, jc.Constant)
		return err
	case "sphere":
		fn = Sphere{Radius: jc.Radius}
	case "box":
		fn = Box{Size: vecFromArray(jc.Size)}
	case "coordinate":
		fn = Coordinate{Axis: jc.Axis}
	case "gyroid":
		fn = Gyroid{Length: jc.Length}
	case "schwarzP":
		fn = SchwarzP{Length: jc.Length}
	case "neovius":
		fn = Neovius{Length: jc.Length}
	case "union":
		op = Union{N: jc.N}
	case "intersect":
		op = Intersect{N: jc.N}
	case "difference":
		op = Difference{}
	case "smoothUnion":
		op = SmoothUnion{N: jc.N, K: jc.K}
	case "smoothIntersect":
		op = SmoothIntersect{N: jc.N, K: jc.K}
	case "smoothDifference":
		op = SmoothDifference{K: jc.K}
	case "offset":
		op = Offset{Distance: jc.Distance}
	case "thickness":
		op = Thickness{T: jc.T}
	case "add":
		op = Add{N: jc.N}
	case "multiply":
		op = Multiply{N: jc.N}
	case "min":
		op = Min{N: jc.N}
	case "max":
		op = Max{N: jc.N}
	default:
		return fmt.Errorf("unknown component type %q", jc.Type)
	}
	if op != nil {
		_, err := m.AddOperation(tag, op, nil)
		return err
	}
	_, err := m.AddFunction(tag, fn)
	return err
}
