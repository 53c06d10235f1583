package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/brainsum/themekit/cli/npm"
	"github.com/otiai10/copy"
)

// distExcludes are files of npm packages not needed by a theme at runtime.
// Patterns without a slash are matched against base names.
var distExcludes = []string{
	"*.map",
	"src/**",
	"examples/**",
	"example/**",
	"demo/**",
	"spec/**",
	"docs/**",
	"tests/**",
	"test/**",
	"Gruntfile.js",
	"gulpfile.js",
	"package.json",
	"package-lock.json",
	"bower.json",
	"composer.json",
	"yarn.lock",
	"webpack.config.js",
	"README",
	"LICENSE",
	"CHANGELOG",
	"*.yml",
	"*.md",
	"*.coffee",
	"*.ts",
	"*.scss",
	"*.less",
}

// isDistExcluded reports whether rel, a slash separated path inside a
// package, is excluded from distribution.
func isDistExcluded(rel string) bool {
	base := rel
	if idx := strings.LastIndex(rel, "/"); idx >= 0 {
		base = rel[idx+1:]
	}
	for _, pattern := range distExcludes {
		name := rel
		if !strings.Contains(pattern, "/") {
			name = base
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// vendors copies distributable files of every runtime dependency from
// node_modules/<dep> to <vendors>/<dep>.
func (p *Pipeline) vendors(context.Context) error {
	deps, err := npm.DistDependencies(p.cfg.ProjectDir)
	if err != nil {
		return err
	}
	for _, dep := range deps {
		src := filepath.Join(p.cfg.Vendors.Src, filepath.FromSlash(dep))
		if _, err := os.Stat(src); err != nil {
			log.Warnf("Dependency %s is not installed, run `npm install`", dep)
			continue
		}
		dest := filepath.Join(p.cfg.Vendors.Dest, filepath.FromSlash(dep))
		if err := os.RemoveAll(dest); err != nil {
			return err
		}
		err := copy.Copy(src, dest, copy.Options{
			Skip: func(_ os.FileInfo, file, _ string) (bool, error) {
				rel, err := filepath.Rel(src, file)
				if err != nil || rel == "." {
					return false, err
				}
				return isDistExcluded(filepath.ToSlash(rel)), nil
			},
		})
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", dep, err)
		}
		log.Debugf("Copied %s", dep)
	}
	return nil
}
