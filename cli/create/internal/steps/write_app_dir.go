package steps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	create_ctx "github.com/brainsum/themekit/cli/create/context"
	"github.com/brainsum/themekit/cli/create/internal/app_template"
	"github.com/brainsum/themekit/cli/util"
	"github.com/otiai10/copy"
)

// WriteAppDirectory represents a step merging the staging directory into
// the destination.
type WriteAppDirectory struct {
	// Confirmer asks for overwriting of conflicting files.
	Confirmer util.Confirmer
}

// findConflicts returns destination files that exist and differ from the
// staged ones, relative to the destination.
func findConflicts(stagingDir, targetDir string) ([]string, error) {
	var conflicts []string
	err := filepath.Walk(stagingDir, func(src string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(stagingDir, src)
		if err != nil {
			return err
		}
		dst := filepath.Join(targetDir, rel)
		if _, err := os.Lstat(dst); err == nil && !util.FilesEqual(src, dst) {
			conflicts = append(conflicts, rel)
		}
		return nil
	})
	return conflicts, err
}

// Run writes rendered theme to the destination. Files with the same content
// are skipped, unrelated files are kept.
func (step WriteAppDirectory) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx) error {
	if templateCtx.TargetAppPath == "" {
		return nil
	}

	conflicts, err := findConflicts(templateCtx.AppPath, templateCtx.TargetAppPath)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 && !createCtx.ForceMode {
		if createCtx.SilentMode || step.Confirmer == nil {
			return fmt.Errorf("files already exist in %s: %s. Use --force to overwrite",
				templateCtx.TargetAppPath, strings.Join(conflicts, ", "))
		}
		for _, conflict := range conflicts {
			log.Warnf("%s already exists and differs from the template.", conflict)
		}
		confirmed, err := step.Confirmer.Confirm(
			fmt.Sprintf("Overwrite %d existing file(s)", len(conflicts)))
		if err != nil {
			return err
		}
		if !confirmed {
			return util.ErrCmdAbort
		}
	}

	if err := os.MkdirAll(templateCtx.TargetAppPath, defaultPermissions); err != nil {
		return err
	}
	err = copy.Copy(templateCtx.AppPath, templateCtx.TargetAppPath, copy.Options{
		Skip: func(srcinfo os.FileInfo, src, dest string) (bool, error) {
			if srcinfo.IsDir() {
				return false, nil
			}
			if util.FilesEqual(src, dest) {
				log.Debugf("Skipping %s: up to date", dest)
				return true, nil
			}
			return false, nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write theme files: %s", err)
	}

	if err := os.RemoveAll(templateCtx.AppPath); err != nil {
		log.Warnf("Failed to remove temporary directory: %s", err)
	}
	templateCtx.AppPath = ""

	return nil
}
