package taskgraph

import (
	"errors"
	"fmt"
	"time"
)

// TaskResult is the outcome of a single task.
type TaskResult struct {
	State    TaskState
	Err      error
	Duration time.Duration
}

// GraphResult is the outcome of a graph execution.
type GraphResult struct {
	// FinalState holds terminal state of every task.
	FinalState ExecutionState
	// ExecutionOrder lists tasks in the order they were started.
	ExecutionOrder []string
	// Tasks holds per task results of started tasks.
	Tasks map[string]TaskResult
}

// Failed returns names of failed tasks in execution order.
func (r *GraphResult) Failed() []string {
	var failed []string
	for _, name := range r.ExecutionOrder {
		if r.FinalState[name] == TaskFailed {
			failed = append(failed, name)
		}
	}
	return failed
}

// Err joins errors of all failed tasks. Nil if no task failed.
func (r *GraphResult) Err() error {
	var errs []error
	for _, name := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", name, r.Tasks[name].Err))
	}
	return errors.Join(errs...)
}
