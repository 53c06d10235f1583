package steps

import (
	"fmt"
	"testing"

	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
	"github.com/stretchr/testify/require"
)

func TestLoadVarsFile(t *testing.T) {
	var createCtx create_ctx.CreateCtx
	templateCtx := app_template.NewTemplateContext()

	createCtx.VarsFile = "testdata/vars-file.txt"
	loadVarsFile := LoadVarsFile{}
	require.NoError(t, loadVarsFile.Run(&createCtx, &templateCtx))
	require.Equal(t, map[string]string{
		"themeName":        "Rustique Commerce",
		"themeMachineName": "rustique_theme",
	}, templateCtx.Vars)
}

func TestLoadVarsFileOverridesVariables(t *testing.T) {
	var createCtx create_ctx.CreateCtx
	templateCtx := app_template.NewTemplateContext()

	templateCtx.Vars["themeName"] = "Other"
	createCtx.VarsFile = "testdata/vars-file.txt"
	loadVarsFile := LoadVarsFile{}
	require.NoError(t, loadVarsFile.Run(&createCtx, &templateCtx))
	require.Equal(t, "Rustique Commerce", templateCtx.Vars["themeName"])
}

func TestLoadVarsFileSkipped(t *testing.T) {
	var createCtx create_ctx.CreateCtx
	templateCtx := app_template.NewTemplateContext()
	require.NoError(t, LoadVarsFile{}.Run(&createCtx, &templateCtx))
	require.Empty(t, templateCtx.Vars)
}

func TestNonExistingVarsFile(t *testing.T) {
	var createCtx create_ctx.CreateCtx
	templateCtx := app_template.NewTemplateContext()

	createCtx.VarsFile = "testdata/non-existing-vars-file.txt"
	loadVarsFile := LoadVarsFile{}
	require.EqualError(t, loadVarsFile.Run(&createCtx, &templateCtx),
		fmt.Sprintf("vars file loading error: open %s: no such file or directory",
			createCtx.VarsFile))
}

func TestLoadVarsFileWrongFormat(t *testing.T) {
	var createCtx create_ctx.CreateCtx
	templateCtx := app_template.NewTemplateContext()

	createCtx.VarsFile = "testdata/invalid_vars_file.txt"
	loadVarsFile := LoadVarsFile{}
	require.EqualError(t, loadVarsFile.Run(&createCtx, &templateCtx),
		fmt.Sprintf("failed to load vars from %s: wrong variable definition "+
			"format: themeName=\nFormat: var-name=value", createCtx.VarsFile))
}
