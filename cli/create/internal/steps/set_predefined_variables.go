package steps

import (
	"path/filepath"

	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
	"github.com/brainsum/themekit/cli/util"
)

// SetPredefinedVariables represents a step for setting pre-defined variables.
type SetPredefinedVariables struct {
	// GitConfig returns git configuration value by key. util.GitConfigValue
	// is used if nil.
	GitConfig func(key string) string
}

// Run sets predefined variables values.
func (step SetPredefinedVariables) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx) error {
	dst, err := destinationDir(createCtx)
	if err != nil {
		return err
	}
	gitConfig := step.GitConfig
	if gitConfig == nil {
		gitConfig = util.GitConfigValue
	}

	templateCtx.Vars["dirName"] = filepath.Base(dst)
	templateCtx.Vars["gitUserName"] = gitConfig("user.name")
	templateCtx.Vars["gitUserEmail"] = gitConfig("user.email")
	return nil
}
