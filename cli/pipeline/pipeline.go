// Package pipeline defines the asset pipeline tasks of a theme and their
// named compositions.
package pipeline

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/brainsum/themekit/cli/config"
	"github.com/brainsum/themekit/cli/configure"
	"github.com/brainsum/themekit/cli/css"
	"github.com/brainsum/themekit/cli/taskgraph"
)

// Notifier pushes rebuild events to browsers.
type Notifier interface {
	NotifyCSS()
	Reload()
}

type nopNotifier struct{}

func (nopNotifier) NotifyCSS() {}
func (nopNotifier) Reload()    {}

// Pipeline holds the tasks of a theme project.
type Pipeline struct {
	cfg        *config.Config
	tools      Toolchain
	breakpoint float64
	ignore     *css.IgnoreList
	tasks      map[string]taskgraph.Task

	mu       sync.RWMutex
	notifier Notifier
}

// New creates the pipeline of the project described by cfg.
func New(cfg *config.Config, tools Toolchain) (*Pipeline, error) {
	breakpoint, err := configure.ParseBreakpoint(cfg.Breakpoint)
	if err != nil {
		return nil, err
	}
	ignore, err := css.NewIgnoreList(cfg.Critical.Ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid critical ignore list: %w", err)
	}
	p := &Pipeline{
		cfg:        cfg,
		tools:      tools,
		breakpoint: breakpoint,
		ignore:     ignore,
		notifier:   nopNotifier{},
	}
	p.tasks = p.leafTasks()
	return p, nil
}

func (p *Pipeline) leafTasks() map[string]taskgraph.Task {
	tasks := []taskgraph.Task{
		{Name: "vendors", Description: "Copy distributable files of dependencies", Action: p.vendors},
		{Name: "cssClean", Description: "Remove compiled stylesheets", Action: p.cssClean},
		{Name: "sassDev", Description: "Compile stylesheets with source maps", Action: p.sassDev},
		{Name: "sassProd", Description: "Lint, compile, split and minify stylesheets", Action: p.sassProd},
		{Name: "sassLint", Description: "Lint and fix stylesheets", Action: p.sassLint},
		{Name: "scripts", Description: "Lint and minify scripts", Action: p.scripts},
		{Name: "scriptsLint", Description: "Lint and fix scripts", Action: p.scriptsLint},
		{Name: "criticalCss", Description: "Generate critical CSS of page types", Action: p.criticalCss},
		{Name: "watch", Description: "Serve the live reload proxy and rebuild on changes", Action: p.watch},
	}
	byName := make(map[string]taskgraph.Task, len(tasks))
	for _, task := range tasks {
		byName[task.Name] = task
	}
	return byName
}

// Lookup resolves a leaf task by name.
func (p *Pipeline) Lookup(name string) (taskgraph.Task, bool) {
	task, ok := p.tasks[name]
	return task, ok
}

func (p *Pipeline) setNotifier(n Notifier) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n == nil {
		n = nopNotifier{}
	}
	p.notifier = n
}

func (p *Pipeline) notify() Notifier {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.notifier
}

// source is a file matched by a pipeline glob.
type source struct {
	// Path is absolute.
	Path string
	// Rel is relative to the static base of the glob, slash separated.
	Rel string
}

// sources returns files of the project matching pattern, sorted.
func (p *Pipeline) sources(pattern string) ([]source, error) {
	base, _ := doublestar.SplitPattern(pattern)
	matches, err := doublestar.Glob(os.DirFS(p.cfg.ProjectDir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	out := make([]source, 0, len(matches))
	for _, match := range matches {
		rel := match
		if base != "." {
			rel = strings.TrimPrefix(strings.TrimPrefix(match, base), "/")
		}
		out = append(out, source{
			Path: filepath.Join(p.cfg.ProjectDir, filepath.FromSlash(match)),
			Rel:  rel,
		})
	}
	return out, nil
}

// isPartial reports whether a stylesheet is a partial, not an entry point.
func isPartial(rel string) bool {
	return strings.HasPrefix(path.Base(rel), "_")
}

// withExt replaces the extension of a slash separated path.
func withExt(rel, ext string) string {
	return strings.TrimSuffix(rel, path.Ext(rel)) + ext
}

// writeFile writes data creating parent directories.
func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}
