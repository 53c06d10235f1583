package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/brainsum/themekit/cli/css"
)

// sassEntries returns stylesheet entry points with outputs under dest.
func (p *Pipeline) sassEntries(dest string) ([]SassEntry, []string, error) {
	srcs, err := p.sources(p.cfg.Styles.Src)
	if err != nil {
		return nil, nil, err
	}
	var entries []SassEntry
	var rels []string
	for _, src := range srcs {
		if isPartial(src.Rel) {
			continue
		}
		rel := withExt(src.Rel, ".css")
		entries = append(entries, SassEntry{
			Src:  src.Path,
			Dest: filepath.Join(dest, filepath.FromSlash(rel)),
		})
		rels = append(rels, rel)
	}
	return entries, rels, nil
}

func entryOutputs(entries []SassEntry) []string {
	files := make([]string, len(entries))
	for i, entry := range entries {
		files[i] = entry.Dest
	}
	return files
}

// cssClean removes the stylesheet output directory.
func (p *Pipeline) cssClean(context.Context) error {
	dest := p.cfg.Styles.Dest
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dest, err)
	}
	return os.MkdirAll(dest, 0o755)
}

// sassDev compiles expanded stylesheets with external source maps and
// refreshes stylesheets of connected browsers.
func (p *Pipeline) sassDev(ctx context.Context) error {
	entries, _, err := p.sassEntries(p.cfg.Styles.Dest)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Warnf("No stylesheets match %s", p.cfg.Styles.Src)
		return nil
	}
	if err := p.tools.Sass(ctx, entries, SassOpts{Expanded: true, SourceMap: true}); err != nil {
		return err
	}
	if err := p.tools.Postcss(ctx, entryOutputs(entries), true); err != nil {
		return err
	}
	p.notify().NotifyCSS()
	return nil
}

// lintStyles runs stylelint with fixes. Problems are reported, never
// returned.
func (p *Pipeline) lintStyles(ctx context.Context) error {
	err := p.tools.Stylelint(ctx, p.cfg.Styles.Src, true)
	var lintErr *LintError
	if errors.As(err, &lintErr) {
		log.Warnf("%s", lintErr)
		return nil
	}
	return err
}

// sassProd builds the production stylesheets: every entry point is split
// at the breakpoint into <name>.css and <name>.large.css, both minified.
func (p *Pipeline) sassProd(ctx context.Context) error {
	if err := p.lintStyles(ctx); err != nil {
		return err
	}

	staging, err := os.MkdirTemp("", "themekit-css*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	entries, rels, err := p.sassEntries(staging)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Warnf("No stylesheets match %s", p.cfg.Styles.Src)
		return nil
	}
	if err := p.tools.Sass(ctx, entries, SassOpts{}); err != nil {
		return err
	}
	if err := p.tools.Postcss(ctx, entryOutputs(entries), false); err != nil {
		return err
	}

	for i, entry := range entries {
		if err := p.splitStylesheet(entry.Dest, rels[i]); err != nil {
			return err
		}
	}
	return nil
}

// splitStylesheet writes the minified base and large parts of a compiled
// stylesheet into the output directory.
func (p *Pipeline) splitStylesheet(compiled, rel string) error {
	src, err := os.ReadFile(compiled)
	if err != nil {
		return err
	}
	sheet, err := css.Parse(src)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", rel, err)
	}
	base, large := css.Split(sheet, p.breakpoint)
	parts := map[string]*css.Stylesheet{
		rel:                        base,
		withExt(rel, ".large.css"): large,
	}
	for name, part := range parts {
		minified, err := css.Minify(part.Bytes())
		if err != nil {
			return fmt.Errorf("failed to minify %s: %w", name, err)
		}
		if err := writeFile(filepath.Join(p.cfg.Styles.Dest, filepath.FromSlash(name)), minified); err != nil {
			return err
		}
	}
	return nil
}

// sassLint lints and fixes stylesheets. Violations are not fatal.
func (p *Pipeline) sassLint(ctx context.Context) error {
	return p.lintStyles(ctx)
}
