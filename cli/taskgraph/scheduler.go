package taskgraph

import (
	"sort"
)

// GetReadyTasks returns names of the tasks eligible to run: pending tasks
// whose dependencies are all completed. The list is sorted by topological
// depth, then by name.
//
// This function does not mutate graph or state.
func GetReadyTasks(g *TaskGraph, state ExecutionState) []string {
	if g == nil {
		return nil
	}

	ready := make([]string, 0)
	for idx, t := range g.tasks {
		if state[t.Name] != TaskPending {
			continue
		}
		depsOK := true
		for _, parent := range g.incoming[idx] {
			if state[g.tasks[parent].Name] != TaskCompleted {
				depsOK = false
				break
			}
		}
		if depsOK {
			ready = append(ready, t.Name)
		}
	}

	sort.SliceStable(ready, func(i, j int) bool {
		a, b := ready[i], ready[j]
		ad, bd := g.depth[g.index[a]], g.depth[g.index[b]]
		if ad != bd {
			return ad < bd
		}
		return a < b
	})
	return ready
}
