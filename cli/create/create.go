package create

import (
	"fmt"
	"os"

	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
	"github.com/brainsum/themekit/cli/create/internal/steps"
	"github.com/brainsum/themekit/cli/npm"
	"github.com/brainsum/themekit/cli/util"
	"github.com/brainsum/themekit/cli/version"
)

// FillCtx fills create context.
func FillCtx(createCtx *create_ctx.CreateCtx, args []string) error {
	if len(args) > 1 {
		return util.NewArgError("only one destination directory can be specified")
	}
	if len(args) == 1 {
		if createCtx.DestinationDir != "" {
			return util.NewArgError("destination is set both by argument and --dst")
		}
		createCtx.DestinationDir = args[0]
	}
	if createCtx.SkipInstall && createCtx.Install {
		return util.NewArgError("--install and --skip-install are mutually exclusive")
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return err
	}
	createCtx.WorkDir = workingDir

	return nil
}

// rollbackOnErr removes temporary theme directory.
func rollbackOnErr(templateCtx *app_template.TemplateCtx) {
	if templateCtx.AppPath != "" {
		os.RemoveAll(templateCtx.AppPath)
	}
	templateCtx.AppPath = ""
}

// Run creates a theme from a template.
func Run(createCtx *create_ctx.CreateCtx) error {
	util.CheckRecommendedBinaries("git", "npm")

	if err := checkCtx(createCtx); err != nil {
		return util.InternalError("Create context check failed: %s", version.GetVersion, err)
	}

	confirmer := util.PromptConfirmer{}
	stepsChain := []steps.Step{
		steps.SetPredefinedVariables{},
		steps.LoadVarsFile{},
		steps.FillTemplateVarsFromCli{},
		steps.CreateTemporaryAppDirectory{},
		steps.CopyAppTemplate{},
		steps.LoadManifest{},
		steps.CollectTemplateVarsFromUser{Reader: steps.NewConsoleReader()},
		steps.RenderTemplate{},
		steps.Cleanup{},
		steps.WriteAppDirectory{Confirmer: confirmer},
		steps.InstallPackages{
			Confirmer: confirmer,
			CheckNode: npm.CheckNodeVersion,
			Install:   npm.Install,
		},
		steps.PrintFollowUpMessage{Writer: os.Stdout},
	}

	return runSteps(createCtx, stepsChain)
}

// runSteps runs steps chain. Staging directory is removed on the first error.
func runSteps(createCtx *create_ctx.CreateCtx, stepsChain []steps.Step) error {
	templateCtx := app_template.NewTemplateContext()
	for _, step := range stepsChain {
		if err := step.Run(createCtx, &templateCtx); err != nil {
			rollbackOnErr(&templateCtx)
			return err
		}
	}
	return nil
}

// checkCtx checks create context for validity.
func checkCtx(ctx *create_ctx.CreateCtx) error {
	if ctx.WorkDir == "" {
		return fmt.Errorf("working directory is not set")
	}
	return nil
}
