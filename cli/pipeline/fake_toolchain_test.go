package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fakeToolchain compiles stylesheets by copying them and records calls.
type fakeToolchain struct {
	mu    sync.Mutex
	calls map[string]int

	stylelintErr error
	eslintErr    error
	sassErr      error
	critical     func(req CriticalRequest) []byte
	requests     []CriticalRequest
}

func newFakeToolchain() *fakeToolchain {
	return &fakeToolchain{calls: make(map[string]int)}
}

func (f *fakeToolchain) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeToolchain) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeToolchain) Sass(_ context.Context, entries []SassEntry, opts SassOpts) error {
	f.record("sass")
	if f.sassErr != nil {
		return f.sassErr
	}
	for _, entry := range entries {
		data, err := os.ReadFile(entry.Src)
		if err != nil {
			return err
		}
		if err := writeFile(entry.Dest, data); err != nil {
			return err
		}
		if opts.SourceMap {
			mapData := fmt.Sprintf(`{"version":3,"file":%q}`, filepath.Base(entry.Dest))
			if err := writeFile(entry.Dest+".map", []byte(mapData)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *fakeToolchain) Postcss(_ context.Context, files []string, _ bool) error {
	f.record("postcss")
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeToolchain) Stylelint(context.Context, string, bool) error {
	f.record("stylelint")
	return f.stylelintErr
}

func (f *fakeToolchain) Eslint(context.Context, []string, bool) error {
	f.record("eslint")
	return f.eslintErr
}

func (f *fakeToolchain) Critical(_ context.Context, req CriticalRequest) ([]byte, error) {
	f.record("critical")
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.critical == nil {
		return nil, errors.New("no critical output")
	}
	return f.critical(req), nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	css     int
	reloads int
}

func (n *fakeNotifier) NotifyCSS() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.css++
}

func (n *fakeNotifier) Reload() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reloads++
}
