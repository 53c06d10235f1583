package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/brainsum/themekit/cli/css"
)

func (p *Pipeline) scriptFiles() ([]source, []string, error) {
	srcs, err := p.sources(p.cfg.Scripts.Src)
	if err != nil {
		return nil, nil, err
	}
	files := make([]string, len(srcs))
	for i, src := range srcs {
		files[i] = src.Path
	}
	return srcs, files, nil
}

// scriptsLint lints and fixes scripts. Remaining errors are fatal.
func (p *Pipeline) scriptsLint(ctx context.Context) error {
	_, files, err := p.scriptFiles()
	if err != nil {
		return err
	}
	return p.tools.Eslint(ctx, files, true)
}

// scripts lints and minifies scripts and reloads connected browsers.
func (p *Pipeline) scripts(ctx context.Context) error {
	srcs, files, err := p.scriptFiles()
	if err != nil {
		return err
	}
	if len(srcs) == 0 {
		log.Warnf("No scripts match %s", p.cfg.Scripts.Src)
		return nil
	}
	if err := p.tools.Eslint(ctx, files, true); err != nil {
		return err
	}
	for _, src := range srcs {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return err
		}
		minified, err := css.MinifyJS(data)
		if err != nil {
			return fmt.Errorf("failed to minify %s: %w", src.Rel, err)
		}
		dest := filepath.Join(p.cfg.Scripts.Dest, filepath.FromSlash(src.Rel))
		if err := writeFile(dest, minified); err != nil {
			return err
		}
	}
	p.notify().Reload()
	return nil
}
