package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
)

// Cleanup represents staging directory cleanup step.
type Cleanup struct{}

// Run removes all files/directories, except files in the include list.
func (Cleanup) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx,
) error {
	if !templateCtx.IsManifestPresent {
		log.Debug("No manifest. Skipping clean up step.")
		return nil
	}

	var err error
	if len(templateCtx.Manifest.Include) == 0 {
		return nil
	}

	filesToKeep := make(map[string]bool, len(templateCtx.Manifest.Include))
	for _, fileName := range templateCtx.Manifest.Include {
		// File name may contain template vars.
		if fileName, err = templateCtx.Engine.RenderText(fileName, templateCtx.Vars); err != nil {
			return fmt.Errorf("file name rendering error: %s", err)
		}
		filesToKeep[filepath.Join(templateCtx.AppPath, filepath.FromSlash(fileName))] = true
	}

	// Directories are not removed in FS tree walk callback.
	dirsToRemove := make([]string, 0)
	err = filepath.Walk(templateCtx.AppPath,
		func(filePath string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if filesToKeep[filePath] {
				return nil
			}
			if fileInfo.IsDir() {
				if filePath != templateCtx.AppPath {
					dirsToRemove = append(dirsToRemove, filePath)
				}
			} else {
				log.Debugf("Removing %s", filePath)
				if err := os.Remove(filePath); err != nil {
					log.Errorf("failed to remove %s: %s", filePath, err)
				}
			}
			return nil
		})
	if err != nil {
		return fmt.Errorf("cleanup failed: %s", err)
	}

	// Remove empty directories, deepest first.
	for i := len(dirsToRemove) - 1; i >= 0; i-- {
		log.Debugf("Removing %s", dirsToRemove[i])
		if err = os.Remove(dirsToRemove[i]); err != nil {
			log.Debugf("Directory %s is not empty.", dirsToRemove[i])
		}
	}

	return nil
}
