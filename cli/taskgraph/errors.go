package taskgraph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGraph is reported for malformed task or edge lists.
	ErrInvalidGraph = errors.New("invalid task graph")
	// ErrCycleFound is reported when task dependencies form a cycle.
	ErrCycleFound = errors.New("task dependencies form a cycle")
)

// invalidGraphError wraps ErrInvalidGraph with the offending detail.
func invalidGraphError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidGraph, fmt.Sprintf(format, args...))
}

// cycleError wraps ErrCycleFound with the tasks on the cycle.
func cycleError(path []string) error {
	if len(path) == 0 {
		return ErrCycleFound
	}
	return fmt.Errorf("%w: %s", ErrCycleFound, strings.Join(path, " -> "))
}
