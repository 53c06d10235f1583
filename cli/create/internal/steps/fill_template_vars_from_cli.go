package steps

import (
	"github.com/apex/log"
	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
)

// FillTemplateVarsFromCli represents a step for setting variables passed
// with --var.
type FillTemplateVarsFromCli struct {
}

// Run collects variables passed using command line args.
func (FillTemplateVarsFromCli) Run(ctx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx) error {
	for _, text := range ctx.VarsFromCli {
		varDef, err := parseVarDefinition(text)
		if err != nil {
			return err
		}
		log.Debugf("Setting var from CLI: %s = %s", varDef.name, varDef.value)
		templateCtx.Vars[varDef.name] = varDef.value
	}
	return nil
}
