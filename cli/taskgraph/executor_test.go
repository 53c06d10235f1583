package taskgraph

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu       sync.Mutex
	started  []string
	finished map[string]TaskResult
	skipped  []string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{finished: map[string]TaskResult{}}
}

func (o *recordingObserver) TaskStarted(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, name)
}

func (o *recordingObserver) TaskFinished(name string, result TaskResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished[name] = result
}

func (o *recordingObserver) TaskSkipped(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skipped = append(o.skipped, name)
}

func runGraph(t *testing.T, ctx context.Context, tasks []Task, edges []Edge) (*GraphResult,
	*recordingObserver, error) {
	g, err := NewTaskGraph(tasks, edges)
	require.NoError(t, err)
	executor, err := NewExecutor(g)
	require.NoError(t, err)
	observer := newRecordingObserver()
	executor.Observer = observer
	result, err := executor.Run(ctx)
	return result, observer, err
}

func TestExecutorRunsIndependentTasksConcurrently(t *testing.T) {
	var running, maxRunning int32
	// Both tasks wait until the other one has started.
	barrier := sync.WaitGroup{}
	barrier.Add(2)
	action := func(ctx context.Context) error {
		cur := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&maxRunning)
			if cur <= old || atomic.CompareAndSwapInt32(&maxRunning, old, cur) {
				break
			}
		}
		barrier.Done()
		barrier.Wait()
		atomic.AddInt32(&running, -1)
		return nil
	}

	result, observer, err := runGraph(t, context.Background(), []Task{
		{Name: "sassDev", Action: action},
		{Name: "scripts", Action: action},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), maxRunning)
	assert.Equal(t, ExecutionState{"sassDev": TaskCompleted, "scripts": TaskCompleted},
		result.FinalState)
	assert.ElementsMatch(t, []string{"sassDev", "scripts"}, observer.started)
}

func TestExecutorSeriesBarrier(t *testing.T) {
	var mu sync.Mutex
	var events []string
	record := func(name string) Action {
		return func(ctx context.Context) error {
			mu.Lock()
			events = append(events, name+":start")
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			events = append(events, name+":end")
			mu.Unlock()
			return nil
		}
	}

	result, _, err := runGraph(t, context.Background(), []Task{
		{Name: "vendors", Action: record("vendors")},
		{Name: "cssClean", Action: record("cssClean")},
		{Name: "sassProd", Action: record("sassProd")},
		{Name: "scripts", Action: record("scripts")},
	}, []Edge{
		{From: "vendors", To: "cssClean"},
		{From: "cssClean", To: "sassProd"},
		{From: "cssClean", To: "scripts"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"vendors", "cssClean"}, result.ExecutionOrder[:2])
	assert.Equal(t, []string{"vendors:start", "vendors:end", "cssClean:start", "cssClean:end"},
		events[:4])
	assert.ElementsMatch(t, []string{"sassProd:start", "sassProd:end", "scripts:start",
		"scripts:end"}, events[4:])
	for _, name := range result.ExecutionOrder {
		assert.Equal(t, TaskCompleted, result.Tasks[name].State)
		assert.Greater(t, result.Tasks[name].Duration, time.Duration(0))
	}
}

func TestExecutorFailureSkipsDescendantsOnly(t *testing.T) {
	var lintCalls int32
	failErr := errors.New("eslint found 2 errors")
	result, observer, err := runGraph(t, context.Background(), []Task{
		{Name: "scriptsLint", Action: func(ctx context.Context) error { return failErr }},
		{Name: "after", Action: func(ctx context.Context) error { return nil }},
		{Name: "sassLint", Action: func(ctx context.Context) error {
			atomic.AddInt32(&lintCalls, 1)
			time.Sleep(10 * time.Millisecond)
			return nil
		}},
	}, []Edge{{From: "scriptsLint", To: "after"}})

	require.ErrorIs(t, err, failErr)
	assert.EqualError(t, err, "scriptsLint: eslint found 2 errors")
	assert.Equal(t, int32(1), lintCalls)
	assert.Equal(t, ExecutionState{
		"scriptsLint": TaskFailed,
		"after":       TaskSkipped,
		"sassLint":    TaskCompleted,
	}, result.FinalState)
	assert.Equal(t, []string{"scriptsLint"}, result.Failed())
	assert.Equal(t, []string{"after"}, observer.skipped)
	assert.Equal(t, TaskFailed, observer.finished["scriptsLint"].State)
}

func TestExecutorPanicIsFailure(t *testing.T) {
	result, _, err := runGraph(t, context.Background(), []Task{
		{Name: "critical", Action: func(ctx context.Context) error { panic("boom") }},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `task "critical" panicked: boom`)
	assert.Equal(t, TaskFailed, result.FinalState["critical"])
}

func TestExecutorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, observer, err := runGraph(t, ctx, []Task{
		{Name: "watch", Action: func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		}},
		{Name: "next", Action: func(ctx context.Context) error { return nil }},
	}, []Edge{{From: "watch", To: "next"}})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ExecutionState{"watch": TaskCompleted, "next": TaskSkipped},
		result.FinalState)
	assert.Equal(t, []string{"watch"}, result.ExecutionOrder)
	assert.Equal(t, []string{"next"}, observer.skipped)
}

func TestExecutorCancellationOfLastTask(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, _, err := runGraph(t, ctx, []Task{
		{Name: "watch", Action: func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		}},
	}, nil)
	// Nothing was left unstarted: interrupting a watcher is a normal stop.
	require.NoError(t, err)
	assert.Equal(t, TaskCompleted, result.FinalState["watch"])
}

func TestExecutorConcurrencyLimit(t *testing.T) {
	var running, maxRunning int32
	action := func(ctx context.Context) error {
		cur := atomic.AddInt32(&running, 1)
		if cur > atomic.LoadInt32(&maxRunning) {
			atomic.StoreInt32(&maxRunning, cur)
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	}
	tasks := []Task{{Name: "a", Action: action}, {Name: "b", Action: action},
		{Name: "c", Action: action}, {Name: "d", Action: action}}
	g, err := NewTaskGraph(tasks, nil)
	require.NoError(t, err)
	executor, err := NewExecutor(g)
	require.NoError(t, err)
	executor.Concurrency = 1

	result, err := executor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), maxRunning)
	assert.Equal(t, []string{"a", "b", "c", "d"}, result.ExecutionOrder)
	for _, state := range executor.StateSnapshot() {
		assert.Equal(t, TaskCompleted, state)
	}
}

func TestNewExecutorNilGraph(t *testing.T) {
	_, err := NewExecutor(nil)
	assert.EqualError(t, err, "nil graph")
}
