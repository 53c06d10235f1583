package app_template

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manifestLoadOutput struct {
	manifest TemplateManifest
	errMsg   string
}

func TestLoadManifest(t *testing.T) {
	output := map[string]manifestLoadOutput{
		"good_manifest.yaml": {
			TemplateManifest{
				Description: "Good template",
				Vars: []UserPrompt{
					{
						Prompt:  "Theme machine name",
						Name:    "themeMachineName",
						Default: "{{machineName .dirName}}_theme",
						Re:      `^[a-z][a-z0-9_]*$`,
					},
					{
						Prompt:  "Author name",
						Name:    "authorName",
						Default: "admin",
					},
				},
				Include:         []string(nil),
				FollowUpMessage: "Theme {{.themeMachineName}} is created.",
			},
			"",
		},
		"missing_var_name.yaml": {
			TemplateManifest{},
			"invalid manifest format: missing variable name",
		},
		"missing_var_prompt.yaml": {
			TemplateManifest{},
			"invalid manifest format: missing user prompt",
		},
		"non_existing.yaml": {
			TemplateManifest{},
			"failed to get access to manifest file: " +
				"stat testdata/non_existing.yaml: no such file or directory",
		},
	}

	for inFile, expected := range output {
		t.Run(inFile, func(t *testing.T) {
			manifest, err := LoadManifest(filepath.Join("testdata", inFile))
			if expected.errMsg != "" {
				assert.EqualError(t, err, expected.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, expected.manifest, manifest)
		})
	}
}

func TestLoadManifestBadRegexp(t *testing.T) {
	_, err := LoadManifest(filepath.Join("testdata", "bad_regexp.yaml"))
	assert.ErrorContains(t, err, "invalid regular expression of themeName")
}

func TestNewTemplateContext(t *testing.T) {
	ctx := NewTemplateContext()
	assert.NotNil(t, ctx.Vars)
	assert.NotNil(t, ctx.Engine)
	assert.False(t, ctx.IsManifestPresent)
}
