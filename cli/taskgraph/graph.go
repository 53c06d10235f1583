package taskgraph

import (
	"context"
	"sort"
)

// Action is a unit of work of a task.
type Action func(ctx context.Context) error

// Task is a named action.
type Task struct {
	Name        string
	Description string
	Action      Action
}

// Edge represents a dependency relation: To depends on From.
type Edge struct {
	From string
	To   string
}

// TaskGraph is an immutable, validated DAG. Nodes are kept in name order.
//
// It is safe for concurrent read access.
type TaskGraph struct {
	index map[string]int
	tasks []Task

	outgoing [][]int // sorted ascending
	incoming [][]int // sorted ascending
	indeg    []int
	depth    []int
}

// NewTaskGraph builds and validates a TaskGraph.
//
// Validation rejects:
//   - empty or duplicate task names
//   - edges referencing unknown tasks
//   - duplicate edges
//   - self-loops
//   - any cycle (direct or indirect)
func NewTaskGraph(tasks []Task, edges []Edge) (*TaskGraph, error) {
	if len(tasks) == 0 {
		return nil, invalidGraphError("no tasks")
	}

	sorted := make([]Task, 0, len(tasks))
	seenNames := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t.Name == "" {
			return nil, invalidGraphError("task name is required")
		}
		if _, exists := seenNames[t.Name]; exists {
			return nil, invalidGraphError("duplicate task name: %q", t.Name)
		}
		seenNames[t.Name] = struct{}{}
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	g := &TaskGraph{
		index:    make(map[string]int, len(sorted)),
		tasks:    sorted,
		outgoing: make([][]int, len(sorted)),
		incoming: make([][]int, len(sorted)),
		indeg:    make([]int, len(sorted)),
	}
	for i, t := range sorted {
		g.index[t.Name] = i
	}

	seenEdges := make(map[[2]int]struct{}, len(edges))
	for _, e := range edges {
		from, okFrom := g.index[e.From]
		to, okTo := g.index[e.To]
		if !okFrom {
			return nil, invalidGraphError("edge references unknown task (from): %q", e.From)
		}
		if !okTo {
			return nil, invalidGraphError("edge references unknown task (to): %q", e.To)
		}
		if from == to {
			return nil, invalidGraphError("self-loop: %q -> %q", e.From, e.To)
		}
		pair := [2]int{from, to}
		if _, exists := seenEdges[pair]; exists {
			return nil, invalidGraphError("duplicate edge: %q -> %q", e.From, e.To)
		}
		seenEdges[pair] = struct{}{}

		g.outgoing[from] = append(g.outgoing[from], to)
		g.incoming[to] = append(g.incoming[to], from)
		g.indeg[to]++
	}
	for i := range g.outgoing {
		sort.Ints(g.outgoing[i])
		sort.Ints(g.incoming[i])
	}

	if err := g.validateAcyclic(); err != nil {
		return nil, err
	}
	g.depth = g.computeDepth()
	return g, nil
}

// Len returns the number of tasks.
func (g *TaskGraph) Len() int { return len(g.tasks) }

// Task returns a task by name.
func (g *TaskGraph) Task(name string) (Task, bool) {
	i, ok := g.index[name]
	if !ok {
		return Task{}, false
	}
	return g.tasks[i], true
}

// Names returns task names in name order.
func (g *TaskGraph) Names() []string {
	out := make([]string, len(g.tasks))
	for i, t := range g.tasks {
		out[i] = t.Name
	}
	return out
}

// Edges returns the dependency edges ordered by (From, To).
func (g *TaskGraph) Edges() []Edge {
	out := make([]Edge, 0)
	for from, tos := range g.outgoing {
		for _, to := range tos {
			out = append(out, Edge{From: g.tasks[from].Name, To: g.tasks[to].Name})
		}
	}
	return out
}

func (g *TaskGraph) names(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = g.tasks[idx].Name
	}
	return out
}

// Parents returns the direct dependencies of the task.
func (g *TaskGraph) Parents(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.names(g.incoming[i])
}

// Children returns the tasks directly depending on the task.
func (g *TaskGraph) Children(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.names(g.outgoing[i])
}

// Depth returns the topological depth of the task: the length of the longest
// path from any root to it.
func (g *TaskGraph) Depth(name string) (int, bool) {
	i, ok := g.index[name]
	if !ok {
		return 0, false
	}
	return g.depth[i], true
}

func (g *TaskGraph) computeDepth() []int {
	depth := make([]int, len(g.tasks))
	for _, u := range g.topoOrderIndices() {
		for _, p := range g.incoming[u] {
			if depth[p]+1 > depth[u] {
				depth[u] = depth[p] + 1
			}
		}
	}
	return depth
}

// TopologicalOrder returns a deterministic topological ordering of task names.
func (g *TaskGraph) TopologicalOrder() []string {
	return g.names(g.topoOrderIndices())
}
