package steps

import (
	"fmt"
	"io"

	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
)

// PrintFollowUpMessage represents a step printing manifest follow-up message.
type PrintFollowUpMessage struct {
	// Writer is used to write follow-up message.
	Writer io.Writer
}

// Run prints theme template follow-up message.
func (printFollowUpMsgStep PrintFollowUpMessage) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx,
) error {
	if !templateCtx.IsManifestPresent || templateCtx.Manifest.FollowUpMessage == "" ||
		createCtx.SilentMode {
		return nil
	}

	followUpText, err := templateCtx.Engine.RenderText(templateCtx.Manifest.FollowUpMessage,
		templateCtx.Vars)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(printFollowUpMsgStep.Writer, followUpText)
	return err
}
