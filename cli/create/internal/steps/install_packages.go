package steps

import (
	"fmt"

	"github.com/apex/log"
	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
	"github.com/brainsum/themekit/cli/util"
)

// InstallPackages represents npm dependencies installation step.
type InstallPackages struct {
	// Confirmer asks whether to install packages.
	Confirmer util.Confirmer
	// CheckNode checks local node version against the theme requirements.
	CheckNode func(dir string) error
	// Install installs theme packages in dir.
	Install func(dir string) error
}

// Run installs packages of the created theme if the user agrees.
func (step InstallPackages) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx) error {
	if createCtx.SkipInstall || templateCtx.TargetAppPath == "" || step.Install == nil {
		return nil
	}

	install := createCtx.Install
	if !install && !createCtx.SilentMode && step.Confirmer != nil {
		var err error
		install, err = step.Confirmer.Confirm("Install npm packages now")
		if err != nil {
			return err
		}
	}
	if !install {
		log.Info("Skipping packages installation. Run `npm install` in the theme directory.")
		return nil
	}

	if step.CheckNode != nil {
		if err := step.CheckNode(templateCtx.TargetAppPath); err != nil {
			log.Warnf("%s", err)
		}
	}
	if err := step.Install(templateCtx.TargetAppPath); err != nil {
		return fmt.Errorf("packages installation failed: %w", err)
	}
	return nil
}
