// Package taskgraph builds validated directed acyclic graphs of named tasks
// and executes them concurrently.
//
// An edge From -> To means To can only run after From completes successfully.
// A failed task marks all of its descendants skipped, independent branches
// keep running.
package taskgraph
