package taskgraph

import (
	"fmt"
	"strings"
)

// Node is a composition of tasks: a single task, tasks run in strict
// order or tasks run concurrently.
type Node interface {
	fmt.Stringer
	// compile adds tasks and edges of the node to b and returns the node
	// entry (sources) and exit (sinks) task names.
	compile(b *builder) (sources, sinks []string, err error)
}

// Lookup resolves a task by name.
type Lookup func(name string) (Task, bool)

type builder struct {
	lookup Lookup
	tasks  []Task
	edges  []Edge
}

type leaf string

type series []Node

type parallel []Node

// Leaf returns a node running a single named task.
func Leaf(name string) Node { return leaf(name) }

// Series returns a node running nodes one after another. Each node starts
// only after every task of the previous node has completed.
func Series(nodes ...Node) Node { return series(nodes) }

// Parallel returns a node running nodes concurrently, with no ordering
// between them.
func Parallel(nodes ...Node) Node { return parallel(nodes) }

func (l leaf) String() string { return string(l) }

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

func (s series) String() string { return "series(" + joinNodes(s) + ")" }

func (p parallel) String() string { return "parallel(" + joinNodes(p) + ")" }

func (l leaf) compile(b *builder) ([]string, []string, error) {
	task, ok := b.lookup(string(l))
	if !ok {
		return nil, nil, invalidGraphError("unknown task: %q", string(l))
	}
	task.Name = string(l)
	b.tasks = append(b.tasks, task)
	return []string{task.Name}, []string{task.Name}, nil
}

func (s series) compile(b *builder) ([]string, []string, error) {
	var sources, prevSinks []string
	for _, node := range s {
		nodeSources, nodeSinks, err := node.compile(b)
		if err != nil {
			return nil, nil, err
		}
		if len(nodeSources) == 0 {
			continue
		}
		if sources == nil {
			sources = nodeSources
		}
		// Barrier: every exit of the previous step precedes every entry of
		// the next one.
		for _, from := range prevSinks {
			for _, to := range nodeSources {
				b.edges = append(b.edges, Edge{From: from, To: to})
			}
		}
		prevSinks = nodeSinks
	}
	return sources, prevSinks, nil
}

func (p parallel) compile(b *builder) ([]string, []string, error) {
	var sources, sinks []string
	for _, node := range p {
		nodeSources, nodeSinks, err := node.compile(b)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, nodeSources...)
		sinks = append(sinks, nodeSinks...)
	}
	return sources, sinks, nil
}

// Compile builds a validated task graph of the composition. Tasks are
// resolved with lookup, a task may appear only once.
func Compile(root Node, lookup Lookup) (*TaskGraph, error) {
	b := builder{lookup: lookup}
	if _, _, err := root.compile(&b); err != nil {
		return nil, err
	}
	return NewTaskGraph(b.tasks, b.edges)
}

// Leaves returns task names of the composition in declaration order.
func Leaves(root Node) []string {
	var out []string
	var walk func(n Node)
	walk = func(n Node) {
		switch node := n.(type) {
		case leaf:
			out = append(out, string(node))
		case series:
			for _, child := range node {
				walk(child)
			}
		case parallel:
			for _, child := range node {
				walk(child)
			}
		}
	}
	walk(root)
	return out
}
