package taskgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(names ...string) []Task {
	tasks := make([]Task, len(names))
	for i, name := range names {
		tasks[i] = Task{Name: name}
	}
	return tasks
}

func TestNewTaskGraphDiamond(t *testing.T) {
	g, err := NewTaskGraph(named("d", "c", "b", "a"), []Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "d"},
		{From: "c", To: "d"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, g.TopologicalOrder())
	assert.Equal(t, []string{"a", "b", "c", "d"}, g.Names())
	assert.Equal(t, []string{"b", "c"}, g.Parents("d"))
	assert.Equal(t, []string{"b", "c"}, g.Children("a"))
	assert.Equal(t, 4, g.Len())

	for name, depth := range map[string]int{"a": 0, "b": 1, "c": 1, "d": 2} {
		actual, ok := g.Depth(name)
		require.True(t, ok)
		assert.Equal(t, depth, actual, name)
	}
	_, ok := g.Depth("missing")
	assert.False(t, ok)

	assert.Equal(t, []Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "d"},
		{From: "c", To: "d"},
	}, g.Edges())
}

func TestNewTaskGraphInvalid(t *testing.T) {
	tests := []struct {
		name   string
		tasks  []Task
		edges  []Edge
		errMsg string
	}{
		{"no tasks", nil, nil, "invalid task graph: no tasks"},
		{"empty name", named(""), nil, "invalid task graph: task name is required"},
		{"duplicate", named("a", "a"), nil, `invalid task graph: duplicate task name: "a"`},
		{
			"unknown from", named("a"), []Edge{{From: "x", To: "a"}},
			`invalid task graph: edge references unknown task (from): "x"`,
		},
		{
			"unknown to", named("a"), []Edge{{From: "a", To: "x"}},
			`invalid task graph: edge references unknown task (to): "x"`,
		},
		{
			"self loop", named("a"), []Edge{{From: "a", To: "a"}},
			`invalid task graph: self-loop: "a" -> "a"`,
		},
		{
			"duplicate edge", named("a", "b"), []Edge{{From: "a", To: "b"}, {From: "a", To: "b"}},
			`invalid task graph: duplicate edge: "a" -> "b"`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTaskGraph(tc.tasks, tc.edges)
			require.ErrorIs(t, err, ErrInvalidGraph)
			assert.EqualError(t, err, tc.errMsg)
		})
	}
}

func TestNewTaskGraphCycle(t *testing.T) {
	_, err := NewTaskGraph(named("a", "b", "c", "d"), []Edge{
		{From: "d", To: "a"},
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "a"},
	})
	require.ErrorIs(t, err, ErrCycleFound)
	assert.EqualError(t, err, "task dependencies form a cycle: a -> b -> c -> a")
	assert.NotErrorIs(t, err, ErrInvalidGraph)
}
