// Package watcher runs rebuild targets on source file changes.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Target is a rebuild action triggered by changes of matching files.
type Target struct {
	// Name is used in log messages.
	Name string
	// Patterns are globs relative to the watcher root.
	Patterns []string
	// Run rebuilds the target. Errors are logged, watching goes on.
	Run func(ctx context.Context) error
}

// target coalesces triggers of a Target. A trigger while the target is idle
// runs it after the debounce delay. Triggers while it runs leave a single
// pending trigger, so exactly one more run follows the current one.
type target struct {
	Target
	trigger chan struct{}
}

func newTarget(t Target) *target {
	return &target{Target: t, trigger: make(chan struct{}, 1)}
}

// notify records a trigger without blocking.
func (t *target) notify() {
	select {
	case t.trigger <- struct{}{}:
	default:
	}
}

func (t *target) loop(ctx context.Context, debounce time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.trigger:
		}

		timer := time.NewTimer(debounce)
	wait:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-t.trigger:
				timer.Reset(debounce)
			case <-timer.C:
				break wait
			}
		}

		if err := t.Run(ctx); err != nil {
			log.Errorf("Rebuild of %s failed: %s", t.Name, err)
		}
	}
}

func (t *target) matches(rel string) bool {
	for _, pattern := range t.Patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Watcher watches the static base directories of target patterns.
type Watcher struct {
	root     string
	debounce time.Duration
	targets  []*target
	fsw      *fsnotify.Watcher
}

// New creates a watcher of targets with patterns relative to root.
func New(root string, debounce time.Duration, targets ...Target) (*Watcher, error) {
	for _, t := range targets {
		for _, pattern := range t.Patterns {
			if !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("invalid pattern %q of %s", pattern, t.Name)
			}
		}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{root: root, debounce: debounce, fsw: fsw}
	for _, t := range targets {
		w.targets = append(w.targets, newTarget(t))
		for _, pattern := range t.Patterns {
			base, _ := doublestar.SplitPattern(pattern)
			if err := w.addRecursive(filepath.Join(root, filepath.FromSlash(base))); err != nil {
				fsw.Close()
				return nil, err
			}
		}
	}
	return w, nil
}

// addRecursive watches dir and all its subdirectories. A missing dir is
// skipped.
func (w *Watcher) addRecursive(dir string) error {
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
	if os.IsNotExist(err) {
		log.Warnf("Directory %s does not exist, not watched", dir)
		return nil
	}
	return err
}

// dispatch triggers targets matching the event path.
func (w *Watcher) dispatch(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				log.Warnf("%s", err)
			}
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	for _, t := range w.targets {
		if t.matches(rel) {
			log.Debugf("%s changed, rebuilding %s", rel, t.Name)
			t.notify()
		}
	}
}

// Run dispatches file events until ctx is done. Targets run
// independently of each other.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	for _, t := range w.targets {
		go func(t *target) {
			t.loop(ctx, w.debounce)
			done <- struct{}{}
		}(t)
	}
	defer func() {
		for range w.targets {
			<-done
		}
	}()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.dispatch(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warnf("File watcher error: %s", err)
		}
	}
}
