//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	goPackageName = "github.com/brainsum/themekit/cli"

	asmflags = "all=-trimpath=${PWD}"
	gcflags  = "all=-trimpath=${PWD}"

	packagePath = "./cli"
)

var (
	ldflags = []string{
		"-X ${PACKAGE}/version.gitTag=${GIT_TAG}",
		"-X ${PACKAGE}/version.gitCommit=${GIT_COMMIT}",
		"-X ${PACKAGE}/version.versionLabel=${VERSION_LABEL}",
	}
	goExecutableName       = "go"
	themekitExecutableName = "themekit"

	Aliases = map[string]any{
		"build": Build.Release,
		"unit":  Unit.Default,
	}
)

func init() {
	var err error

	if specifiedGoExe := os.Getenv("GOEXE"); specifiedGoExe != "" {
		goExecutableName = specifiedGoExe
	}

	if specifiedExe := os.Getenv("THEMEKITEXE"); specifiedExe != "" {
		themekitExecutableName = specifiedExe
	} else {
		if themekitExecutableName, err = filepath.Abs(themekitExecutableName); err != nil {
			panic(err)
		}
	}
}

type optsUpdater func([]string) ([]string, error)

// appendFlags appends flags passed in args.
func appendFlags(flags ...string) optsUpdater {
	return func(args []string) ([]string, error) {
		return append(args, flags...), nil
	}
}

// appendLdFlags appends linker flags.
func appendLdFlags(flags ...string) optsUpdater {
	return func(args []string) ([]string, error) {
		buildLdflags := make([]string, len(ldflags))
		copy(buildLdflags, ldflags)
		buildLdflags = append(buildLdflags, flags...)
		return append(append(args, "-ldflags"), strings.Join(buildLdflags, " ")), nil
	}
}

// Building themekit executable.
func buildThemekit(argUpdaters ...optsUpdater) error {
	args := []string{"build", "-o", themekitExecutableName}
	var err error
	for _, updateArguments := range argUpdaters {
		if args, err = updateArguments(args); err != nil {
			return err
		}
	}
	args = append(args,
		"-asmflags", asmflags,
		"-gcflags", gcflags,
		packagePath)
	err = sh.RunWith(getBuildEnvironment(), goExecutableName, args...)
	if err != nil {
		return fmt.Errorf("Failed to build themekit executable: %s", err)
	}

	return nil
}

type Build mg.Namespace

// Building release themekit executable without debug info.
func (Build) Release() error {
	fmt.Println("Building release themekit...")

	return buildThemekit(appendLdFlags("-s", "-w"))
}

// Building debug themekit executable.
func (Build) Debug() error {
	fmt.Println("Building debug themekit...")

	return buildThemekit(appendLdFlags())
}

// Building themekit executable with coverage.
func (Build) Coverage() error {
	fmt.Println("Building release themekit with coverage...")

	err := buildThemekit(appendFlags("-cover"), appendLdFlags("-s", "-w"))
	if err != nil {
		return err
	}
	fmt.Println(`Set coverage data destination directory (must exist) and run themekit:
	GOCOVERDIR=./<coverage_dest_dir> themekit <opts>`)
	return nil
}

type Lint mg.Namespace

// Run golang linters.
func (Lint) Golang() error {
	fmt.Println("Running golangci-lint...")

	return sh.RunV("golangci-lint", "run")
}

type Unit mg.Namespace

func runUnitTests(flags []string) error {
	args := []string{"test"}
	if mg.Verbose() {
		args = append(args, "-v")
	}
	args = append(args, "./...")
	args = append(args, flags...)

	return sh.RunV(goExecutableName, args...)
}

// Run unit tests.
func (Unit) Default() error {
	fmt.Println("Running unit tests...")

	return runUnitTests([]string{})
}

// Run unit tests with the race detector.
func (Unit) Race() error {
	fmt.Println("Running unit tests with the race detector...")

	return runUnitTests([]string{"-race"})
}

// Run unit tests with code coverage.
func (Unit) Coverage() error {
	fmt.Println("Running unit tests with code coverage...")

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	coverDir := filepath.Join(cwd, "coverage", "unit")
	if err := os.MkdirAll(coverDir, 0o750); err != nil {
		return err
	}

	err = runUnitTests([]string{
		"-cover",
		"-args", fmt.Sprintf(`-test.gocoverdir=%s`, coverDir),
	})
	if err != nil {
		return err
	}
	fmt.Printf(`Coverage data is saved to %q. Example command for analysis:
	go tool covdata func -i %q
`, coverDir, coverDir)

	return nil
}

// Create a theme with the built executable in a temporary directory.
func Smoke() error {
	mg.Deps(Build.Debug)
	fmt.Println("Creating a theme...")

	dir, err := os.MkdirTemp("", "themekit-smoke")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	err = sh.RunV(themekitExecutableName, "create", filepath.Join(dir, "smoke"),
		"--non-interactive", "--skip-install",
		"--var", "authorName=Smoke", "--var", "authorEmail=smoke@example.com")
	if err != nil {
		return err
	}
	return sh.RunV(themekitExecutableName, "tasks")
}

// Run all tests together.
func Test() {
	mg.SerialDeps(Lint.Golang, Unit.Default)
}

// Cleanup directory.
func Clean() {
	fmt.Println("Cleaning directory...")

	os.Remove(themekitExecutableName)
	os.RemoveAll("coverage")
}

// getBuildEnvironment return map with build environment variables.
func getBuildEnvironment() map[string]string {
	var err error

	var currentDir string
	var gitTag string
	var gitCommit string

	if currentDir, err = os.Getwd(); err != nil {
		log.Warnf("Failed to get current directory: %s", err)
	}

	if _, err := exec.LookPath("git"); err == nil {
		gitTag, _ = sh.Output("git", "describe", "--tags")
		gitCommit, _ = sh.Output("git", "rev-parse", "--short", "HEAD")
	}

	return map[string]string{
		"PACKAGE":       goPackageName,
		"GIT_TAG":       gitTag,
		"GIT_COMMIT":    gitCommit,
		"VERSION_LABEL": os.Getenv("VERSION_LABEL"),
		"PWD":           currentDir,
		"CGO_ENABLED":   "0",
	}
}
