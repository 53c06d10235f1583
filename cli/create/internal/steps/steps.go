// Package steps provides a set of handlers for create command chain of responsibility.
package steps

import (
	"fmt"
	"path/filepath"
	"strings"

	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
)

// Step is an interface for single step in create chain.
type Step interface {
	Run(ctx *create_ctx.CreateCtx, templateCtx *app_template.TemplateCtx) error
}

const varDefFormatError = `wrong variable definition format: %s
Format: var-name=value`

// varDefinition is a single name=value pair.
type varDefinition struct {
	name  string
	value string
}

// parseVarDefinition parses "name=value" string. Both parts are mandatory.
func parseVarDefinition(text string) (varDefinition, error) {
	text = strings.TrimSpace(text)
	name, value, found := strings.Cut(text, "=")
	if !found || name == "" || value == "" {
		return varDefinition{}, fmt.Errorf(varDefFormatError, text)
	}
	return varDefinition{name: name, value: value}, nil
}

// destinationDir returns absolute path of the directory the theme is created in.
func destinationDir(createCtx *create_ctx.CreateCtx) (string, error) {
	dst := createCtx.DestinationDir
	if dst == "" {
		dst = createCtx.WorkDir
	} else if !filepath.IsAbs(dst) && createCtx.WorkDir != "" {
		dst = filepath.Join(createCtx.WorkDir, dst)
	}
	return filepath.Abs(dst)
}
