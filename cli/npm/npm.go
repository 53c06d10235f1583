// Package npm wraps the node package manager used by generated themes.
package npm

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/brainsum/themekit/cli/util"
	"github.com/hashicorp/go-version"
)

const (
	// PackageFileName is the npm package manifest name.
	PackageFileName = "package.json"
	// NvmrcFileName is the file with required node version.
	NvmrcFileName = ".nvmrc"
	// ModulesDir is the directory npm installs packages to.
	ModulesDir = "node_modules"
)

// Package contains package.json fields used by themekit.
type Package struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// ReadPackage loads package.json from dir.
func ReadPackage(dir string) (Package, error) {
	var pkg Package
	data, err := os.ReadFile(filepath.Join(dir, PackageFileName))
	if err != nil {
		return pkg, fmt.Errorf("failed to read %s: %w", PackageFileName, err)
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return pkg, fmt.Errorf("failed to parse %s: %w", PackageFileName, err)
	}
	return pkg, nil
}

// DistDependencies returns sorted names of runtime dependencies of the
// package in dir.
func DistDependencies(dir string) ([]string, error) {
	pkg, err := ReadPackage(dir)
	if err != nil {
		return nil, err
	}
	deps := make([]string, 0, len(pkg.Dependencies))
	for name := range pkg.Dependencies {
		deps = append(deps, name)
	}
	sort.Strings(deps)
	return deps, nil
}

// Bin resolves an executable of a node tool: local node_modules/.bin of
// projectDir is checked first, then PATH.
func Bin(projectDir, name string) (string, error) {
	local := filepath.Join(projectDir, ModulesDir, ".bin", name)
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return local, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%q is not found in %s or PATH, run `npm install`",
			name, filepath.Join(ModulesDir, ".bin"))
	}
	return path, nil
}

// Install runs `npm install` in dir. Spinner is shown on terminals.
func Install(dir string) error {
	npmPath, err := exec.LookPath("npm")
	if err != nil {
		return fmt.Errorf("npm is not found: %w", err)
	}
	log.Infof("Installing packages in %s", dir)
	if err := util.RunCommand(exec.Command(npmPath, "install"), dir, false); err != nil {
		return err
	}
	log.Info("Packages are installed.")
	return nil
}

// parseNodeVersion parses node version strings like "v20.11.1" or "20".
// Aliases like "lts/*" are not versions.
func parseNodeVersion(text string) (*version.Version, error) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "v")
	return version.NewVersion(text)
}

// compareNodeVersions returns an error if actual node version is older
// than required.
func compareNodeVersions(required, actual string) error {
	requiredVersion, err := parseNodeVersion(required)
	if err != nil {
		log.Debugf("Skipping node version check: %q is not a version", required)
		return nil
	}
	actualVersion, err := parseNodeVersion(actual)
	if err != nil {
		return fmt.Errorf("unexpected node version %q: %w", actual, err)
	}
	if actualVersion.LessThan(requiredVersion) {
		return fmt.Errorf("node %s is older than %s required by %s",
			actualVersion, requiredVersion, NvmrcFileName)
	}
	return nil
}

// CheckNodeVersion compares `node --version` with the version from .nvmrc
// in dir. Missing .nvmrc is not an error.
func CheckNodeVersion(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, NvmrcFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	nodePath, err := Bin(dir, "node")
	if err != nil {
		return err
	}
	out, err := util.RunCommandAndGetOutput(nodePath, "--version")
	if err != nil {
		return fmt.Errorf("failed to get node version: %w", err)
	}
	return compareNodeVersions(string(data), out)
}
