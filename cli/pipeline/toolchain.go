package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/apex/log"
	"github.com/brainsum/themekit/cli/config"
	"github.com/brainsum/themekit/cli/npm"
)

// SassEntry is a stylesheet entry point and its output file.
type SassEntry struct {
	Src  string
	Dest string
}

// SassOpts are compilation options.
type SassOpts struct {
	// Expanded selects the expanded output style instead of the default.
	Expanded  bool
	SourceMap bool
}

// CriticalRequest describes a critical CSS extraction of one page at one
// viewport size.
type CriticalRequest struct {
	URL    string
	CSS    []string
	Width  int
	Height int
}

// LintError is returned when a linter reports problems.
type LintError struct {
	Tool string
	Err  error
}

func (e *LintError) Error() string {
	return fmt.Sprintf("%s reported problems: %s", e.Tool, e.Err)
}

func (e *LintError) Unwrap() error { return e.Err }

// Toolchain runs the Node tools of the pipeline. Paths are absolute.
type Toolchain interface {
	// Sass compiles every entry.
	Sass(ctx context.Context, entries []SassEntry, opts SassOpts) error
	// Postcss processes files in place.
	Postcss(ctx context.Context, files []string, sourceMap bool) error
	// Stylelint lints files matching the pattern. Problems are reported
	// as *LintError.
	Stylelint(ctx context.Context, pattern string, fix bool) error
	// Eslint lints files. Problems are reported as *LintError.
	Eslint(ctx context.Context, files []string, fix bool) error
	// Critical returns the above-the-fold CSS of a page.
	Critical(ctx context.Context, req CriticalRequest) ([]byte, error)
}

// ExecToolchain runs the tools installed in the project node_modules or
// found in PATH.
type ExecToolchain struct {
	Dir    string
	Tools  config.ToolsOpts
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecToolchain creates a toolchain of the project in cfg.
func NewExecToolchain(cfg *config.Config) *ExecToolchain {
	return &ExecToolchain{
		Dir:    cfg.ProjectDir,
		Tools:  cfg.Tools,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (t *ExecToolchain) command(ctx context.Context, tool string, args ...string) (*exec.Cmd, error) {
	bin, err := npm.Bin(t.Dir, tool)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = t.Dir
	cmd.Stdout = t.Stdout
	cmd.Stderr = t.Stderr
	log.Debugf("Running %s", cmd.String())
	return cmd, nil
}

func (t *ExecToolchain) run(ctx context.Context, tool string, args ...string) error {
	cmd, err := t.command(ctx, tool, args...)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", tool, err)
	}
	return nil
}

func (t *ExecToolchain) lint(ctx context.Context, tool string, args ...string) error {
	cmd, err := t.command(ctx, tool, args...)
	if err != nil {
		return err
	}
	err = cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &LintError{Tool: tool, Err: err}
	}
	return err
}

func (t *ExecToolchain) Sass(ctx context.Context, entries []SassEntry, opts SassOpts) error {
	if len(entries) == 0 {
		return nil
	}
	args := []string{"--load-path=node_modules"}
	if opts.Expanded {
		args = append(args, "--style=expanded")
	}
	if opts.SourceMap {
		args = append(args, "--source-map")
	} else {
		args = append(args, "--no-source-map")
	}
	for _, entry := range entries {
		args = append(args, entry.Src+":"+entry.Dest)
	}
	return t.run(ctx, t.Tools.Sass, args...)
}

func (t *ExecToolchain) Postcss(ctx context.Context, files []string, sourceMap bool) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{}, files...)
	args = append(args, "--replace")
	if sourceMap {
		args = append(args, "--map")
	} else {
		args = append(args, "--no-map")
	}
	return t.run(ctx, t.Tools.Postcss, args...)
}

func (t *ExecToolchain) Stylelint(ctx context.Context, pattern string, fix bool) error {
	args := []string{pattern, "--formatter", "verbose", "--allow-empty-input"}
	if fix {
		args = append(args, "--fix")
	}
	return t.lint(ctx, t.Tools.Stylelint, args...)
}

func (t *ExecToolchain) Eslint(ctx context.Context, files []string, fix bool) error {
	if len(files) == 0 {
		return nil
	}
	var args []string
	if fix {
		args = append(args, "--fix")
	}
	return t.lint(ctx, t.Tools.Eslint, append(args, files...)...)
}

func (t *ExecToolchain) Critical(ctx context.Context, req CriticalRequest) ([]byte, error) {
	args := []string{req.URL,
		"--base", t.Dir,
		"--width", strconv.Itoa(req.Width),
		"--height", strconv.Itoa(req.Height),
	}
	for _, file := range req.CSS {
		args = append(args, "--css", file)
	}
	cmd, err := t.command(ctx, t.Tools.Critical, args...)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed for %s: %w", t.Tools.Critical, req.URL, err)
	}
	return out.Bytes(), nil
}
