package pipeline

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/brainsum/themekit/cli/taskgraph"
	"github.com/brainsum/themekit/cli/util"
)

// DefaultEntryPoint runs when no task is named.
const DefaultEntryPoint = "default"

// EntryPoint is a named composition of tasks.
type EntryPoint struct {
	Name        string
	Description string
	Node        taskgraph.Node
}

var (
	leaf     = taskgraph.Leaf
	series   = taskgraph.Series
	parallel = taskgraph.Parallel
)

var entryPoints = []EntryPoint{
	{
		Name:        DefaultEntryPoint,
		Description: "Build for development, then serve and watch",
		Node: series(leaf("vendors"), leaf("cssClean"),
			parallel(leaf("sassDev"), leaf("scripts")), leaf("watch")),
	},
	{
		Name:        "prod",
		Description: "Build for production",
		Node: series(leaf("vendors"), leaf("cssClean"),
			parallel(leaf("sassProd"), leaf("scripts"))),
	},
	{
		Name:        "lint",
		Description: "Lint stylesheets and scripts",
		Node:        parallel(leaf("sassLint"), leaf("scriptsLint")),
	},
	{
		Name:        "critical",
		Description: "Build production stylesheets and critical CSS",
		Node:        series(leaf("sassProd"), leaf("criticalCss")),
	},
	{Name: "vendors", Description: "Copy distributable files of dependencies", Node: leaf("vendors")},
	{Name: "sassDev", Description: "Compile stylesheets with source maps", Node: leaf("sassDev")},
	{Name: "sassProd", Description: "Lint, compile, split and minify stylesheets", Node: leaf("sassProd")},
	{Name: "sassLint", Description: "Lint and fix stylesheets", Node: leaf("sassLint")},
	{Name: "scripts", Description: "Lint and minify scripts", Node: leaf("scripts")},
	{Name: "scriptsLint", Description: "Lint and fix scripts", Node: leaf("scriptsLint")},
	{Name: "watch", Description: "Serve the live reload proxy and rebuild on changes", Node: leaf("watch")},
}

// EntryPoints returns the runnable entry points.
func EntryPoints() []EntryPoint {
	return append([]EntryPoint(nil), entryPoints...)
}

// FindEntryPoint returns the entry point with the name.
func FindEntryPoint(name string) (EntryPoint, bool) {
	for _, entry := range entryPoints {
		if entry.Name == name {
			return entry, true
		}
	}
	return EntryPoint{}, false
}

// Graph compiles the named entry point.
func (p *Pipeline) Graph(name string) (*taskgraph.TaskGraph, error) {
	entry, ok := FindEntryPoint(name)
	if !ok {
		return nil, fmt.Errorf("unknown task %q", name)
	}
	return taskgraph.Compile(entry.Node, p.Lookup)
}

// RunNode compiles and executes a composition. Task lifecycle is logged.
func (p *Pipeline) RunNode(ctx context.Context, node taskgraph.Node) error {
	graph, err := taskgraph.Compile(node, p.Lookup)
	if err != nil {
		return err
	}
	executor, err := taskgraph.NewExecutor(graph)
	if err != nil {
		return err
	}
	executor.Observer = logObserver{}
	_, err = executor.Run(ctx)
	return err
}

// Run executes the named entry points one after another. The first
// failure stops the run.
func (p *Pipeline) Run(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		names = []string{DefaultEntryPoint}
	}
	entries := make([]EntryPoint, 0, len(names))
	for _, name := range names {
		entry, ok := FindEntryPoint(name)
		if !ok {
			return fmt.Errorf("unknown task %q", name)
		}
		entries = append(entries, entry)
	}
	for _, entry := range entries {
		log.Infof("Running %s", util.Bold(entry.Name))
		log.Debugf("%s = %s", entry.Name, entry.Node)
		if err := p.RunNode(ctx, entry.Node); err != nil {
			return fmt.Errorf("task %s failed: %w", entry.Name, err)
		}
	}
	return nil
}
