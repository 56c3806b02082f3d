// Package model implements the tagged DAG of components (spec.md §3/§6):
// the authoring surface producing an ImplicitModel, which compiles down to
// a graph.Graph for a chosen output tag.
package model

import (
	"sort"

	"github.com/dcrane/isofield/graph"
)

// ComponentKind is the tagged-variant discriminator for Component.
type ComponentKind int

const (
	// KindConstant evaluates to a fixed scalar.
	KindConstant ComponentKind = iota
	// KindFunction evaluates f(x,y,z).
	KindFunction
	// KindOperation evaluates g(inputs[]).
	KindOperation
)

// Component is the tagged variant stored per tag in an ImplicitModel.
type Component struct {
	Kind     ComponentKind
	Constant float64
	Fn       graph.Function
	Op       graph.Operation
}

// Arity returns the number of graph inputs this component consumes: 0 for
// Constant/Function, Op.Arity() for Operation.
func (c Component) Arity() int {
	if c.Kind == KindOperation {
		return c.Op.Arity()
	}
	return 0
}

const unwired = "" // sentinel for an Option<String> input slot of None

// ImplicitModel is a tag-indexed map of components plus per-tag input
// wiring. Acyclicity is enforced on every edge insertion; the default
// output tag is the last one added (spec.md §3).
type ImplicitModel struct {
	order         []string // insertion order, used for deterministic compile tie-breaks
	components    map[string]Component
	inputs        map[string][]string // tag -> source tags, unwired slots are ""
	defaultOutput string
}

// New returns an empty model.
func New() *ImplicitModel {
	return &ImplicitModel{
		components: make(map[string]Component),
		inputs:     make(map[string][]string),
	}
}

// DefaultOutput returns the tag of the most recently added component.
func (m *ImplicitModel) DefaultOutput() string {
	return m.defaultOutput
}

func (m *ImplicitModel) add(tag string, c Component, arity int) (string, error) {
	if _, ok := m.components[tag]; ok {
		return "", &DuplicateTagError{Tag: tag}
	}
	m.components[tag] = c
	slots := make([]string, arity)
	for i := range slots {
		slots[i] = unwired
	}
	m.inputs[tag] = slots
	m.order = append(m.order, tag)
	m.defaultOutput = tag
	return tag, nil
}

// AddConstant registers a fixed-scalar component.
func (m *ImplicitModel) AddConstant(tag string, v float64) (string, error) {
	return m.add(tag, Component{Kind: KindConstant, Constant: v}, 0)
}

// AddFunction registers a position-dependent component.
func (m *ImplicitModel) AddFunction(tag string, f graph.Function) (string, error) {
	return m.add(tag, Component{Kind: KindFunction, Fn: f}, 0)
}

// AddOperation registers a predecessor-dependent component. inputs, if
// non-nil, must have length op.Arity() and is wired immediately (each
// entry validated as if by AddInput); pass nil to leave every slot
// unwired.
func (m *ImplicitModel) AddOperation(tag string, op graph.Operation, inputs []string) (string, error) {
	arity := op.Arity()
	if inputs != nil && len(inputs) != arity {
		return "", &IncorrectInputCountError{Component: tag, NumInputs: arity, Count: len(inputs)}
	}
	if _, err := m.add(tag, Component{Kind: KindOperation, Op: op}, arity); err != nil {
		return "", err
	}
	for i, src := range inputs {
		if src == unwired {
			continue
		}
		if err := m.AddInput(tag, src, i); err != nil {
			return "", err
		}
	}
	return tag, nil
}

// dependsOn reports whether a's (transitive) input wiring already
// references b.
func (m *ImplicitModel) dependsOn(a, b string) bool {
	if a == b {
		return true
	}
	visited := make(map[string]bool)
	var dfs func(tag string) bool
	dfs = func(tag string) bool {
		if visited[tag] {
			return false
		}
		visited[tag] = true
		for _, src := range m.inputs[tag] {
			if src == unwired {
				continue
			}
			if src == b {
				return true
			}
			if dfs(src) {
				return true
			}
		}
		return false
	}
	return dfs(a)
}

// AddInput wires source into target's input slot index, validating
// target/source existence, arity, and acyclicity: if target is already a
// (transitive) dependency of source, wiring source into target would
// create a cycle, and CyclicDependencyError is returned instead.
func (m *ImplicitModel) AddInput(target, source string, index int) error {
	tc, ok := m.components[target]
	if !ok {
		return &MissingTagError{Tag: target}
	}
	if _, ok := m.components[source]; !ok {
		return &MissingTagError{Tag: source}
	}
	arity := tc.Arity()
	if index < 0 || index >= arity {
		return &InputIndexOutOfRangeError{Component: target, NumInputs: arity, Index: index}
	}
	if m.dependsOn(source, target) {
		return &CyclicDependencyError{Tag: target}
	}
	m.inputs[target][index] = source
	return nil
}

// RemoveInput clears target's input slot index back to unwired.
func (m *ImplicitModel) RemoveInput(tag string, index int) error {
	tc, ok := m.components[tag]
	if !ok {
		return &MissingTagError{Tag: tag}
	}
	arity := tc.Arity()
	if index < 0 || index >= arity {
		return &InputIndexOutOfRangeError{Component: tag, NumInputs: arity, Index: index}
	}
	m.inputs[tag][index] = unwired
	return nil
}

// RemoveComponent deletes tag, cascading to clear every other
// component's input slots that referenced it.
func (m *ImplicitModel) RemoveComponent(tag string) error {
	if _, ok := m.components[tag]; !ok {
		return &MissingTagError{Tag: tag}
	}
	for other, slots := range m.inputs {
		if other == tag {
			continue
		}
		for i, src := range slots {
			if src == tag {
				slots[i] = unwired
			}
		}
	}
	delete(m.components, tag)
	delete(m.inputs, tag)
	for i, t := range m.order {
		if t == tag {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.defaultOutput == tag {
		if len(m.order) > 0 {
			m.defaultOutput = m.order[len(m.order)-1]
		} else {
			m.defaultOutput = ""
		}
	}
	return nil
}

// Compile produces the flat, topologically-ordered graph.Graph for
// output tag τ (spec.md §4.5): DFS-collect the reachable set, Kahn's
// algorithm for the topological order (ties broken by insertion order for
// test determinism), then build flat component/input-index arrays. Any
// missing input, unknown tag, or cycle fails compilation with a specific
// error.
func (m *ImplicitModel) Compile(output string) (*graph.Graph, error) {
	if output == "" {
		output = m.defaultOutput
	}
	if _, ok := m.components[output]; !ok {
		return nil, &MissingTagError{Tag: output}
	}

	// 1. reachability
	reachable := make(map[string]bool)
	var collect func(tag string)
	collect = func(tag string) {
		if reachable[tag] {
			return
		}
		reachable[tag] = true
		for _, src := range m.inputs[tag] {
			if src == unwired {
				continue
			}
			collect(src)
		}
	}
	collect(output)

	// validate every required input slot is wired
	for tag := range reachable {
		c := m.components[tag]
		for i, src := range m.inputs[tag] {
			if src == unwired {
				return nil, &MissingInputError{Component: tag, Index: i}
			}
			_ = c
		}
	}

	// stable discovery order: model.order filtered to the reachable set
	var ordered []string
	for _, tag := range m.order {
		if reachable[tag] {
			ordered = append(ordered, tag)
		}
	}
	positionOf := make(map[string]int, len(ordered))
	for i, tag := range ordered {
		positionOf[tag] = i
	}

	// 2. Kahn's algorithm, ties broken by position in `ordered`
	inDegree := make(map[string]int, len(ordered))
	for _, tag := range ordered {
		n := 0
		for _, src := range m.inputs[tag] {
			if src != unwired {
				n++
			}
		}
		inDegree[tag] = n
	}
	dependents := make(map[string][]string) // src -> tags that consume it
	for _, tag := range ordered {
		for _, src := range m.inputs[tag] {
			if src != unwired {
				dependents[src] = append(dependents[src], tag)
			}
		}
	}

	ready := []string{}
	for _, tag := range ordered {
		if inDegree[tag] == 0 {
			ready = append(ready, tag)
		}
	}
	sortByPosition := func(tags []string) {
		sort.Slice(tags, func(i, j int) bool { return positionOf[tags[i]] < positionOf[tags[j]] })
	}
	sortByPosition(ready)

	var topo []string
	for len(ready) > 0 {
		tag := ready[0]
		ready = ready[1:]
		topo = append(topo, tag)
		var newlyReady []string
		for _, dep := range dependents[tag] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				newlyReady = append(newlyReady, dep)
			}
		}
		if len(newlyReady) > 0 {
			ready = append(ready, newlyReady...)
			sortByPosition(ready)
		}
	}

	if len(topo) != len(ordered) {
		return nil, &CyclicDependencyError{Tag: output}
	}

	flatIndex := make(map[string]int, len(topo))
	for i, tag := range topo {
		flatIndex[tag] = i
	}

	nodes := make([]graph.Node, len(topo))
	for i, tag := range topo {
		c := m.components[tag]
		n := graph.Node{}
		switch c.Kind {
		case KindConstant:
			n.Kind = graph.NodeConstant
			n.Constant = c.Constant
		case KindFunction:
			n.Kind = graph.NodeFunction
			n.Fn = c.Fn
		case KindOperation:
			n.Kind = graph.NodeOperation
			n.Op = c.Op
			srcs := m.inputs[tag]
			n.Inputs = make([]int, len(srcs))
			for j, src := range srcs {
				n.Inputs[j] = flatIndex[src]
			}
		}
		nodes[i] = n
	}

	return &graph.Graph{Nodes: nodes}, nil
}
