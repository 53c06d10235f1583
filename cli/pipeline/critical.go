package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/brainsum/themekit/cli/configure"
	"github.com/brainsum/themekit/cli/css"
)

// pageURL resolves a page URL against the proxied site.
func (p *Pipeline) pageURL(raw string) (string, error) {
	base, err := url.Parse(p.cfg.LiveReload.Proxy)
	if err != nil {
		return "", fmt.Errorf("invalid proxy url %q: %w", p.cfg.LiveReload.Proxy, err)
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid page url %q: %w", raw, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// compiledStylesheets returns the top level stylesheets of the output
// directory.
func (p *Pipeline) compiledStylesheets() ([]string, error) {
	dest := p.cfg.Styles.Dest
	matches, err := doublestar.Glob(os.DirFS(dest), "*.css", doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	files := make([]string, len(matches))
	for i, match := range matches {
		files[i] = filepath.Join(dest, match)
	}
	return files, nil
}

// criticalCss generates the critical CSS of every page type: outputs of
// all viewport sizes are merged without duplicates, ignored rules and
// declarations are dropped and the result is minified.
func (p *Pipeline) criticalCss(ctx context.Context) error {
	pages, err := configure.LoadPages(p.cfg.Critical.Pages)
	if err != nil {
		return err
	}
	stylesheets, err := p.compiledStylesheets()
	if err != nil {
		return err
	}
	if len(stylesheets) == 0 {
		return fmt.Errorf("no compiled stylesheets in %s", p.cfg.Styles.Dest)
	}

	for _, page := range pages {
		pageURL, err := p.pageURL(page.URL)
		if err != nil {
			return err
		}
		var sheets []*css.Stylesheet
		for _, dim := range p.cfg.Critical.Dimensions {
			out, err := p.tools.Critical(ctx, CriticalRequest{
				URL:    pageURL,
				CSS:    stylesheets,
				Width:  dim.Width,
				Height: dim.Height,
			})
			if err != nil {
				return err
			}
			sheet, err := css.Parse(out)
			if err != nil {
				return fmt.Errorf("failed to parse critical CSS of %s: %w", page.Name, err)
			}
			sheets = append(sheets, sheet)
		}
		filtered := p.ignore.Filter(css.Merge(sheets...))
		minified, err := css.Minify(filtered.Bytes())
		if err != nil {
			return fmt.Errorf("failed to minify critical CSS of %s: %w", page.Name, err)
		}
		dest := filepath.Join(p.cfg.Critical.Dest, page.Name+".css")
		if err := writeFile(dest, minified); err != nil {
			return err
		}
		log.Infof("Critical CSS of %s (%s) written to %s", page.Name, pageURL, dest)
	}
	return nil
}
