package taskgraph

import (
	"container/heap"
	"fmt"
)

// TaskState is the runtime execution state of a task.
type TaskState string

const (
	TaskPending   TaskState = "pending"
	TaskRunning   TaskState = "running"
	TaskCompleted TaskState = "completed"
	TaskFailed    TaskState = "failed"
	TaskSkipped   TaskState = "skipped"
)

// ExecutionState maps task name to its current state.
type ExecutionState map[string]TaskState

// NewExecutionState returns a state with every task of g pending.
func NewExecutionState(g *TaskGraph) ExecutionState {
	state := make(ExecutionState, len(g.tasks))
	for _, t := range g.tasks {
		state[t.Name] = TaskPending
	}
	return state
}

// IsTerminal reports whether the state is terminal.
func IsTerminal(s TaskState) bool {
	switch s {
	case TaskCompleted, TaskFailed, TaskSkipped:
		return true
	default:
		return false
	}
}

// Transition performs a validated transition of a single task. The caller
// supplies the expected prior state.
func Transition(state ExecutionState, taskName string, from, to TaskState) error {
	cur, ok := state[taskName]
	if !ok {
		return fmt.Errorf("unknown task in state: %q", taskName)
	}
	if cur != from {
		return fmt.Errorf("invalid transition for %q: expected %s, got %s", taskName, from, cur)
	}
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("disallowed transition for %q: %s -> %s", taskName, from, to)
	}
	state[taskName] = to
	return nil
}

func isAllowedTransition(from, to TaskState) bool {
	switch from {
	case TaskPending:
		return to == TaskRunning || to == TaskSkipped
	case TaskRunning:
		return to == TaskCompleted || to == TaskFailed
	default:
		return false
	}
}

// FailAndPropagate transitions taskName from running to failed and marks all
// its pending descendants skipped. Returns names of the skipped tasks.
func FailAndPropagate(g *TaskGraph, state ExecutionState, taskName string) ([]string, error) {
	start, ok := g.index[taskName]
	if !ok {
		return nil, fmt.Errorf("unknown task: %q", taskName)
	}
	if err := Transition(state, taskName, TaskRunning, TaskFailed); err != nil {
		return nil, err
	}

	visited := make([]bool, len(g.tasks))
	visited[start] = true
	queue := &intMinHeap{}
	for _, d := range g.outgoing[start] {
		heap.Push(queue, d)
	}

	var skipped []string
	for queue.Len() > 0 {
		u := heap.Pop(queue).(int)
		if visited[u] {
			continue
		}
		visited[u] = true

		name := g.tasks[u].Name
		switch state[name] {
		case TaskPending:
			state[name] = TaskSkipped
			skipped = append(skipped, name)
		case TaskRunning:
			return skipped, fmt.Errorf("downstream task %q is running during failure propagation",
				name)
		}

		for _, v := range g.outgoing[u] {
			if !visited[v] {
				heap.Push(queue, v)
			}
		}
	}
	return skipped, nil
}

// SkipPending marks every pending task skipped. Returns names of the
// skipped tasks.
func SkipPending(g *TaskGraph, state ExecutionState) []string {
	var skipped []string
	for _, t := range g.tasks {
		if state[t.Name] == TaskPending {
			state[t.Name] = TaskSkipped
			skipped = append(skipped, t.Name)
		}
	}
	return skipped
}
