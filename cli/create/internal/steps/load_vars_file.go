package steps

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
)

// LoadVarsFile represents variables file load step.
type LoadVarsFile struct {
}

// Run loads variables from the vars file. Empty lines and lines starting
// with # are skipped.
func (LoadVarsFile) Run(ctx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx) error {
	if ctx.VarsFile == "" { // Skip if no file specified.
		return nil
	}

	varsFilePath := ctx.VarsFile
	if !filepath.IsAbs(varsFilePath) && ctx.WorkDir != "" {
		varsFilePath = filepath.Join(ctx.WorkDir, varsFilePath)
	}
	varsFile, err := os.Open(varsFilePath)
	if err != nil {
		return fmt.Errorf("vars file loading error: %s", err)
	}
	defer varsFile.Close()

	scanner := bufio.NewScanner(varsFile)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		varDef, err := parseVarDefinition(line)
		if err != nil {
			return fmt.Errorf("failed to load vars from %s: %s", varsFilePath, err)
		}
		log.Debugf("Setting var from vars file: %s = %s", varDef.name, varDef.value)
		templateCtx.Vars[varDef.name] = varDef.value
	}

	return scanner.Err()
}
