package taskgraph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Observer receives task lifecycle notifications. Calls are serialized.
type Observer interface {
	TaskStarted(name string)
	TaskFinished(name string, result TaskResult)
	TaskSkipped(name string)
}

// Executor runs a TaskGraph. Every ready task is started immediately, so
// independent branches run concurrently and a task starts only after all
// its dependencies have completed.
type Executor struct {
	Graph *TaskGraph
	// Concurrency limits the number of tasks running at once. Zero means
	// no limit.
	Concurrency int
	// Observer is notified about task lifecycle events. Optional.
	Observer Observer

	mu    sync.Mutex
	state ExecutionState
}

// NewExecutor creates an executor with all tasks pending.
func NewExecutor(g *TaskGraph) (*Executor, error) {
	if g == nil {
		return nil, fmt.Errorf("nil graph")
	}
	return &Executor{Graph: g, state: NewExecutionState(g)}, nil
}

// StateSnapshot returns a copy of the current execution state.
func (e *Executor) StateSnapshot() ExecutionState {
	e.mu.Lock()
	defer e.mu.Unlock()

	cp := make(ExecutionState, len(e.state))
	for k, v := range e.state {
		cp[k] = v
	}
	return cp
}

type taskDone struct {
	name     string
	err      error
	duration time.Duration
}

// runTask runs a single task action, a panic is reported as the task error.
func runTask(ctx context.Context, task Task, doneCh chan<- taskDone) {
	start := time.Now()
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task %q panicked: %v", task.Name, r)
			}
		}()
		if task.Action == nil {
			return nil
		}
		return task.Action(ctx)
	}()
	doneCh <- taskDone{name: task.Name, err: err, duration: time.Since(start)}
}

func (e *Executor) notifySkipped(names []string) {
	if e.Observer == nil {
		return
	}
	for _, name := range names {
		e.Observer.TaskSkipped(name)
	}
}

// startReady starts ready tasks. Must be called with e.mu locked.
func (e *Executor) startReady(ctx context.Context, result *GraphResult, inFlight *int,
	doneCh chan<- taskDone) error {
	for _, name := range GetReadyTasks(e.Graph, e.state) {
		if e.Concurrency > 0 && *inFlight >= e.Concurrency {
			break
		}
		if err := Transition(e.state, name, TaskPending, TaskRunning); err != nil {
			return err
		}
		result.ExecutionOrder = append(result.ExecutionOrder, name)
		*inFlight++
		if e.Observer != nil {
			e.Observer.TaskStarted(name)
		}
		task, _ := e.Graph.Task(name)
		go runTask(ctx, task, doneCh)
	}
	return nil
}

// finish records a finished task. Must be called with e.mu locked.
func (e *Executor) finish(result *GraphResult, done taskDone) error {
	taskResult := TaskResult{Err: done.err, Duration: done.duration}
	var skipped []string
	if done.err == nil {
		if err := Transition(e.state, done.name, TaskRunning, TaskCompleted); err != nil {
			return err
		}
		taskResult.State = TaskCompleted
	} else {
		var err error
		if skipped, err = FailAndPropagate(e.Graph, e.state, done.name); err != nil {
			return err
		}
		taskResult.State = TaskFailed
	}
	result.Tasks[done.name] = taskResult
	if e.Observer != nil {
		e.Observer.TaskFinished(done.name, taskResult)
	}
	e.notifySkipped(skipped)
	return nil
}

// Run executes the graph. Cancellation of ctx skips every task that has not
// started yet and waits for the running ones. An error is returned if any
// task failed or the execution was cancelled before all tasks started.
func (e *Executor) Run(ctx context.Context) (*GraphResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	result := &GraphResult{Tasks: make(map[string]TaskResult, e.Graph.Len())}
	// Buffered, so task goroutines never block on an early return.
	doneCh := make(chan taskDone, e.Graph.Len())
	inFlight := 0
	cancelled := false

	var runErr error
	for {
		e.mu.Lock()
		if !cancelled && ctx.Err() != nil {
			cancelled = true
			skipped := SkipPending(e.Graph, e.state)
			e.notifySkipped(skipped)
			if len(skipped) > 0 {
				runErr = fmt.Errorf("execution cancelled: %w", ctx.Err())
			}
		}
		if !cancelled {
			if err := e.startReady(ctx, result, &inFlight, doneCh); err != nil {
				e.mu.Unlock()
				return nil, err
			}
		}
		if inFlight == 0 {
			// Nothing runs and nothing can start: the rest is unreachable.
			e.notifySkipped(SkipPending(e.Graph, e.state))
			result.FinalState = make(ExecutionState, len(e.state))
			for k, v := range e.state {
				result.FinalState[k] = v
			}
			e.mu.Unlock()
			break
		}
		e.mu.Unlock()

		var done taskDone
		if cancelled {
			done = <-doneCh
		} else {
			select {
			case done = <-doneCh:
			case <-ctx.Done():
				continue
			}
		}

		e.mu.Lock()
		inFlight--
		err := e.finish(result, done)
		e.mu.Unlock()
		if err != nil {
			return nil, err
		}
	}

	return result, errors.Join(result.Err(), runErr)
}
