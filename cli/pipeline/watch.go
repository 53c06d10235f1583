package pipeline

import (
	"context"

	"github.com/brainsum/themekit/cli/livereload"
	"github.com/brainsum/themekit/cli/taskgraph"
	"github.com/brainsum/themekit/cli/watcher"
	"golang.org/x/sync/errgroup"
)

// rebuild returns a watcher action running the named task.
func (p *Pipeline) rebuild(name string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return p.RunNode(ctx, taskgraph.Leaf(name))
	}
}

// watch serves the live reload proxy and rebuilds stylesheets and scripts
// on changes until ctx is done.
func (p *Pipeline) watch(ctx context.Context) error {
	server, err := livereload.New(p.cfg.LiveReload.Proxy, p.cfg.LiveReload.Listen)
	if err != nil {
		return err
	}
	w, err := watcher.New(p.cfg.ProjectDir, p.cfg.LiveReload.Debounce,
		watcher.Target{Name: "sassDev", Patterns: []string{p.cfg.Styles.Src}, Run: p.rebuild("sassDev")},
		watcher.Target{Name: "scripts", Patterns: []string{p.cfg.Scripts.Src}, Run: p.rebuild("scripts")},
	)
	if err != nil {
		return err
	}

	p.setNotifier(server)
	defer p.setNotifier(nil)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx) })
	g.Go(func() error { return w.Run(ctx) })
	return g.Wait()
}
