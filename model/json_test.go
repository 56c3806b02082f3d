package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRoundTripModel(t *testing.T) *ImplicitModel {
	t.Helper()
	m := New()
	_, err := m.AddFunction("a", Sphere{Radius: 3})
	require.NoError(t, err)
	_, err = m.AddFunction("b", Box{Size: vecFromArray([3]float64{1, 2, 3})})
	require.NoError(t, err)
	_, err = m.AddOperation("out", Difference{}, []string{"a", "b"})
	require.NoError(t, err)
	return m
}

func TestMarshalUnmarshalRoundTripsGraphShape(t *testing.T) {
	m := buildRoundTripModel(t)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var m2 ImplicitModel
	require.NoError(t, json.Unmarshal(data, &m2))

	g1, err := m.Compile("out")
	require.NoError(t, err)
	g2, err := m2.Compile("out")
	require.NoError(t, err)

	require.Equal(t, len(g1.Nodes), len(g2.Nodes))
	for i := range g1.Nodes {
		assert.Equal(t, g1.Nodes[i].Kind, g2.Nodes[i].Kind)
		assert.Equal(t, g1.Nodes[i].Inputs, g2.Nodes[i].Inputs)
	}

	scratch1 := g1.NewScratch()
	scratch2 := g2.NewScratch()
	assert.Equal(t, g1.EvaluateAt(scratch1, 1, 1, 1), g2.EvaluateAt(scratch2, 1, 1, 1))
}

func TestMarshalUnmarshalPreservesDefaultOutput(t *testing.T) {
	m := buildRoundTripModel(t)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var m2 ImplicitModel
	require.NoError(t, json.Unmarshal(data, &m2))
	assert.Equal(t, "out", m2.DefaultOutput())
}

func TestMarshalOperationParameters(t *testing.T) {
	m := New()
	_, err := m.AddFunction("a", Sphere{Radius: 1})
	require.NoError(t, err)
	_, err = m.AddFunction("b", Sphere{Radius: 2})
	require.NoError(t, err)
	_, err = m.AddOperation("blend", SmoothUnion{N: 2, K: 0.5}, []string{"a", "b"})
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var m2 ImplicitModel
	require.NoError(t, json.Unmarshal(data, &m2))
	g, err := m2.Compile("blend")
	require.NoError(t, err)
	last := g.Nodes[len(g.Nodes)-1]
	su, ok := last.Op.(SmoothUnion)
	require.True(t, ok)
	assert.Equal(t, 0.5, su.K)
	assert.Equal(t, 2, su.N)
}

func TestMarshalMeshSDFFunctionFails(t *testing.T) {
	m := New()
	_, err := m.AddFunction("mesh", MeshSDF{})
	require.NoError(t, err)

	_, err = json.Marshal(m)
	assert.Error(t, err)
}

func TestUnmarshalUnknownComponentTypeFails(t *testing.T) {
	var m ImplicitModel
	err := json.Unmarshal([]byte(`{"order":["a"],"components":{"a":{"type":"nonsense"}},"defaultOutput":"a"}`), &m)
	assert.Error(t, err)
}
