package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constFn struct{ v float64 }

func (c constFn) Eval(x, y, z float64) float64 { return c.v }

type coordFn struct{ axis int }

func (c coordFn) Eval(x, y, z float64) float64 {
	switch c.axis {
	case 0:
		return x
	case 1:
		return y
	default:
		return z
	}
}

type sumOp struct{ n int }

func (s sumOp) Arity() int { return s.n }
func (s sumOp) Eval(in []float64) float64 {
	var total float64
	for _, v := range in {
		total += v
	}
	return total
}

func TestEvaluateAtConstantNode(t *testing.T) {
	g := &Graph{Nodes: []Node{{Kind: NodeConstant, Constant: 42}}}
	s := g.NewScratch()
	assert.Equal(t, 42.0, g.EvaluateAt(s, 1, 2, 3))
}

func TestEvaluateAtFunctionNode(t *testing.T) {
	g := &Graph{Nodes: []Node{{Kind: NodeFunction, Fn: coordFn{axis: 0}}}}
	s := g.NewScratch()
	assert.Equal(t, 7.0, g.EvaluateAt(s, 7, 8, 9))
}

func TestEvaluateAtOperationNodeGathersInputs(t *testing.T) {
	g := &Graph{Nodes: []Node{
		{Kind: NodeConstant, Constant: 1},
		{Kind: NodeConstant, Constant: 2},
		{Kind: NodeOperation, Op: sumOp{n: 2}, Inputs: []int{0, 1}},
	}}
	s := g.NewScratch()
	assert.Equal(t, 3.0, g.EvaluateAt(s, 0, 0, 0))
}

func TestEvaluateAtWideOperationSpillsPastStackScratch(t *testing.T) {
	nodes := make([]Node, 0, stackScratchSize+3)
	inputs := make([]int, 0, stackScratchSize+2)
	for i := 0; i < stackScratchSize+2; i++ {
		nodes = append(nodes, Node{Kind: NodeConstant, Constant: float64(i)})
		inputs = append(inputs, i)
	}
	nodes = append(nodes, Node{Kind: NodeOperation, Op: sumOp{n: len(inputs)}, Inputs: inputs})

	g := &Graph{Nodes: nodes}
	s := g.NewScratch()

	want := 0.0
	for i := 0; i < stackScratchSize+2; i++ {
		want += float64(i)
	}
	assert.Equal(t, want, g.EvaluateAt(s, 0, 0, 0))
}

func TestScratchGrowsWhenGraphGrowsAfterAllocation(t *testing.T) {
	g := &Graph{Nodes: []Node{{Kind: NodeConstant, Constant: 1}}}
	s := g.NewScratch()
	require.Len(t, s.values, 1)

	g.Nodes = append(g.Nodes, Node{Kind: NodeConstant, Constant: 2})
	assert.Equal(t, 2.0, g.EvaluateAt(s, 0, 0, 0))
}

func TestZeroValueScratchIsSafeToReuse(t *testing.T) {
	g := &Graph{Nodes: []Node{{Kind: NodeFunction, Fn: constFn{v: 5}}}}
	s := &Scratch{}
	assert.Equal(t, 5.0, g.EvaluateAt(s, 0, 0, 0))
}
