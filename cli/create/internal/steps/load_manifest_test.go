package steps

import (
	"os"
	"path/filepath"
	"testing"

	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifestText = `
description: Theme template
vars:
    - prompt: Theme machine name
      name: themeMachineName
      default: '{{machineName .dirName}}_theme'
      re: ^[a-z_]+$

    - prompt: Author name
      name: authorName
      default: admin

follow-up-message: Done.
`

func TestManifestLoad(t *testing.T) {
	workDir := t.TempDir()
	manifestPath := filepath.Join(workDir, "MANIFEST.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(testManifestText), 0o644))

	var createCtx create_ctx.CreateCtx
	templateCtx := app_template.NewTemplateContext()
	templateCtx.AppPath = workDir

	require.NoError(t, LoadManifest{}.Run(&createCtx, &templateCtx))
	assert.True(t, templateCtx.IsManifestPresent)
	assert.Equal(t, app_template.TemplateManifest{
		Description: "Theme template",
		Vars: []app_template.UserPrompt{
			{
				Prompt:  "Theme machine name",
				Name:    "themeMachineName",
				Default: "{{machineName .dirName}}_theme",
				Re:      `^[a-z_]+$`,
			},
			{
				Prompt:  "Author name",
				Name:    "authorName",
				Default: "admin",
			},
		},
		FollowUpMessage: "Done.",
	}, templateCtx.Manifest)

	// Manifest must not get into the theme.
	assert.NoFileExists(t, manifestPath)
}

func TestMissingManifest(t *testing.T) {
	var createCtx create_ctx.CreateCtx
	templateCtx := app_template.NewTemplateContext()
	templateCtx.AppPath = t.TempDir()

	require.NoError(t, LoadManifest{}.Run(&createCtx, &templateCtx))
	assert.False(t, templateCtx.IsManifestPresent)
}

func TestManifestInvalidYaml(t *testing.T) {
	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "MANIFEST.yaml"),
		[]byte(`description: [`), 0o644))

	var createCtx create_ctx.CreateCtx
	templateCtx := app_template.NewTemplateContext()
	templateCtx.AppPath = workDir

	assert.ErrorContains(t, LoadManifest{}.Run(&createCtx, &templateCtx),
		"failed to load manifest file")
}
