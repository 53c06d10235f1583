package steps

import (
	"fmt"
	"os"

	"github.com/apex/log"
	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
)

// CreateTemporaryAppDirectory represents create temporary theme directory step.
type CreateTemporaryAppDirectory struct {
}

// Run resolves the destination directory and creates a staging directory
// the template is instantiated in.
func (CreateTemporaryAppDirectory) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx) error {
	appDirectory, err := destinationDir(createCtx)
	if err != nil {
		return err
	}

	if fileInfo, err := os.Stat(appDirectory); err == nil && !fileInfo.IsDir() {
		return fmt.Errorf("destination %s is not a directory", appDirectory)
	}

	log.Infof("Creating theme in %q", appDirectory)
	templateCtx.TargetAppPath = appDirectory

	templateCtx.AppPath, err = os.MkdirTemp("", "themekit*")
	if err != nil {
		return fmt.Errorf("failed to create temporary theme directory: %s", err)
	}

	return nil
}
