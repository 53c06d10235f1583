package steps

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
)

// RenderTemplate represents template render step.
type RenderTemplate struct{}

var templateFileNamePattern = regexp.MustCompile(`^(.*)\.tt\.template$`)

func render(templateCtx *app_template.TemplateCtx, filePath string) error {
	if matches := templateFileNamePattern.FindStringSubmatch(
		filepath.Base(filePath)); matches != nil {
		// File name matches template pattern. Render the file.
		resultFilePath := filepath.Join(filepath.Dir(filePath), matches[1])
		if err := templateCtx.Engine.RenderFile(filePath,
			resultFilePath, templateCtx.Vars); err != nil {
			return err
		}
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error removing %s: %s", filePath, err)
		}
		filePath = resultFilePath
	}

	// Render file name. Only the part below staging directory is a template.
	dir, name := filepath.Split(filePath)
	newName, err := templateCtx.Engine.RenderText(name, templateCtx.Vars)
	if err != nil {
		return fmt.Errorf("failed file name processing %s: %s", filePath, err)
	}
	if newName != name {
		newFilePath := filepath.Join(dir, newName)
		if err = os.Rename(filePath, newFilePath); err != nil {
			return fmt.Errorf("error renaming %s to %s: %s", filePath, newFilePath, err)
		}
	}
	return nil
}

// Run renders template in the staging directory.
func (RenderTemplate) Run(ctx *create_ctx.CreateCtx, templateCtx *app_template.TemplateCtx) error {
	// Collect the list first: files are renamed while rendering.
	var files []string
	err := filepath.Walk(templateCtx.AppPath,
		func(filePath string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fileInfo.Mode().IsRegular() {
				files = append(files, filePath)
			}
			return nil
		})
	if err != nil {
		return fmt.Errorf("template instantiation error: %s", err)
	}

	for _, filePath := range files {
		if err := render(templateCtx, filePath); err != nil {
			return fmt.Errorf("template instantiation error: %s", err)
		}
	}
	return nil
}
