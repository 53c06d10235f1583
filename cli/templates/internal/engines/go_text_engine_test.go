package engines

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateText = `name: {{.themeName}}
description: '{{ .themeDescription }}'
libraries:
  - {{ .themeMachineName }}/global-styling`

const (
	templateFileName = "theme.info.yml.tt.template"
	resultFileName   = "theme.info.yml"
	fileMode         = os.FileMode(0o640)
)

func TestTemplateFileRender(t *testing.T) {
	workDir := t.TempDir()

	srcFileName := filepath.Join(workDir, templateFileName)
	require.NoError(t, os.WriteFile(srcFileName, []byte(templateText), fileMode))

	dstFileName := filepath.Join(workDir, resultFileName)
	data := map[string]string{
		"themeName":        "Rustique",
		"themeDescription": "Drupal theme",
		"themeMachineName": "rustique_theme",
	}

	engine := GoTextEngine{}
	require.NoError(t, engine.RenderFile(srcFileName, dstFileName, data))

	// Check generated file permissions equal to origin.
	stat, err := os.Stat(dstFileName)
	require.NoError(t, err)
	assert.Equal(t, fileMode, stat.Mode())

	buf, err := os.ReadFile(dstFileName)
	require.NoError(t, err)
	const expected = `name: Rustique
description: 'Drupal theme'
libraries:
  - rustique_theme/global-styling`
	assert.Equal(t, expected, string(buf))
}

func TestTemplateFileRenderMissingValues(t *testing.T) {
	workDir := t.TempDir()

	srcFileName := filepath.Join(workDir, templateFileName)
	require.NoError(t, os.WriteFile(srcFileName, []byte(templateText), 0o666))

	dstFileName := filepath.Join(workDir, resultFileName)
	data := map[string]string{"themeName": "Rustique"}
	engine := GoTextEngine{}
	assert.Error(t, engine.RenderFile(srcFileName, dstFileName, data),
		"Missing template variable must cause render failure.")
	assert.NoFileExists(t, dstFileName)
}

func TestTextRendering(t *testing.T) {
	data := map[string]string{"dirName": "Rustique Commerce"}
	engine := GoTextEngine{}

	actualText, err := engine.RenderText(`{{machineName .dirName}}_theme`, data)
	require.NoError(t, err)
	assert.Equal(t, "rustique_commerce_theme", actualText)

	actualText, err = engine.RenderText(`http://{{kebab .dirName}}.test`, data)
	require.NoError(t, err)
	assert.Equal(t, "http://rustique-commerce.test", actualText)

	// Test missing key.
	_, err = engine.RenderText(`{{.hello}}`, data)
	assert.Error(t, err, "Rendering must fail on missing keys.")
}
