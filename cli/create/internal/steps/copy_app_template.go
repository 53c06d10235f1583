package steps

import (
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/apex/log"
	"github.com/brainsum/themekit/cli/create/builtin_templates"
	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
	"github.com/brainsum/themekit/cli/util"
	"github.com/otiai10/copy"
)

const defaultPermissions = os.FileMode(0755)

// CopyAppTemplate represents template copy step.
type CopyAppTemplate struct {
	// BuiltinFs is a file system with built-in templates.
	// builtin_templates.TemplatesFs is used if nil.
	BuiltinFs fs.FS
}

// Run copies theme template to the staging directory.
func (step CopyAppTemplate) Run(ctx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx) error {
	if ctx.TemplatePath != "" {
		if !util.IsDir(ctx.TemplatePath) {
			return fmt.Errorf("template directory %q does not exist", ctx.TemplatePath)
		}
		log.Infof("Using template from %s", ctx.TemplatePath)
		if err := copy.Copy(ctx.TemplatePath, templateCtx.AppPath); err != nil {
			return fmt.Errorf("template copying failed: %s", err)
		}
	} else {
		fsys := step.BuiltinFs
		if fsys == nil {
			fsys = builtin_templates.TemplatesFs
		}
		templateDir := path.Join(builtin_templates.TemplatesRoot, builtin_templates.DefaultName)
		log.Debugf("Using built-in template %s", builtin_templates.DefaultName)
		if err := util.FsCopyDir(fsys, templateDir, templateCtx.AppPath); err != nil {
			return fmt.Errorf("template copying failed: %s", err)
		}
	}

	if err := os.Chmod(templateCtx.AppPath, defaultPermissions); err != nil {
		return fmt.Errorf("failed to change permissions of %s: %s", templateCtx.AppPath, err)
	}
	return nil
}
