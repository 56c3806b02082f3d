// Package graph implements the compiled, flat, topologically-ordered
// projection of a component DAG: the hot-path structure walked once per
// sampled point.
package graph

// NodeKind distinguishes the three component shapes a compiled graph node
// can take (spec.md §3 Component).
type NodeKind int

const (
	// NodeConstant evaluates to a fixed scalar.
	NodeConstant NodeKind = iota
	// NodeFunction evaluates f(x,y,z).
	NodeFunction
	// NodeOperation evaluates g(inputs[]).
	NodeOperation
)

// Function is the capability a position-dependent component must expose.
type Function interface {
	Eval(x, y, z float64) float64
}

// Operation is the capability a predecessor-dependent component must
// expose. Arity reports the number of inputs it consumes.
type Operation interface {
	Eval(inputs []float64) float64
	Arity() int
}

// Node is one compiled entry: its kind, its evaluator (Function/Operation,
// nil for NodeConstant), its constant value (if NodeConstant), and the
// flat indices of its predecessors (length == Operation.Arity() for
// NodeOperation, empty otherwise).
type Node struct {
	Kind     NodeKind
	Constant float64
	Fn       Function
	Op       Operation
	Inputs   []int // indices into the owning Graph's Nodes, all < this node's own index
}

// Graph is the flat, topologically-ordered evaluator compiled from an
// ImplicitModel for one output tag (package model). It borrows component
// references from the model that compiled it — the model must outlive
// the graph (spec.md §5).
type Graph struct {
	Nodes []Node
}

// stackScratchSize is the design floor for the per-node input-gather
// buffer (spec.md §4.5): up to this many inputs are gathered on the stack
// before spilling to a heap slice.
const stackScratchSize = 8

// Scratch is per-task evaluation scratch: one float64 per compiled node,
// reused across EvaluateAt calls by the same task/goroutine (spec.md §5).
type Scratch struct {
	values []float64
}

// NewScratch returns scratch sized for g. Size grows monotonically with
// the graph and is safe to reuse across evaluations of the same graph.
func (g *Graph) NewScratch() *Scratch {
	return &Scratch{values: make([]float64, len(g.Nodes))}
}

// EvaluateAt evaluates the graph at (x,y,z) using (and overwriting) the
// given scratch buffer, growing it if the graph has grown since it was
// allocated. Returns the value of the last node (the compiled output).
func (g *Graph) EvaluateAt(s *Scratch, x, y, z float64) float64 {
	if len(s.values) < len(g.Nodes) {
		s.values = make([]float64, len(g.Nodes))
	}
	var stackBuf [stackScratchSize]float64
	for k, n := range g.Nodes {
		switch n.Kind {
		case NodeConstant:
			s.values[k] = n.Constant
		case NodeFunction:
			s.values[k] = n.Fn.Eval(x, y, z)
		case NodeOperation:
			var in []float64
			if len(n.Inputs) <= stackScratchSize {
				in = stackBuf[:len(n.Inputs)]
			} else {
				in = make([]float64, len(n.Inputs))
			}
			for i, src := range n.Inputs {
				in[i] = s.values[src]
			}
			s.values[k] = n.Op.Eval(in)
		}
	}
	if len(g.Nodes) == 0 {
		return 0
	}
	return s.values[len(g.Nodes)-1]
}
