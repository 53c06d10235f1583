package npm

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func TestDistDependencies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PackageFileName), `{
  "name": "rustique-theme",
  "dependencies": {"normalize.css": "^8.0.1", "a11y-dialog": "^7.0.0"},
  "devDependencies": {"sass": "^1.77.0"}
}`, 0o644)

	deps, err := DistDependencies(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a11y-dialog", "normalize.css"}, deps)

	pkg, err := ReadPackage(dir)
	require.NoError(t, err)
	assert.Equal(t, "rustique-theme", pkg.Name)
	assert.Contains(t, pkg.DevDependencies, "sass")
}

func TestDistDependenciesErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := DistDependencies(dir)
	assert.ErrorContains(t, err, "failed to read package.json")

	writeFile(t, filepath.Join(dir, PackageFileName), `{"dependencies": [`, 0o644)
	_, err = DistDependencies(dir)
	assert.ErrorContains(t, err, "failed to parse package.json")
}

func TestCompareNodeVersions(t *testing.T) {
	assert.NoError(t, compareNodeVersions("20\n", "v20.11.1\n"))
	assert.NoError(t, compareNodeVersions("v18.2", "v20.0.0"))
	assert.NoError(t, compareNodeVersions("lts/*", "v10.0.0"))
	assert.EqualError(t, compareNodeVersions("20", "v18.19.0"),
		"node 18.19.0 is older than 20.0.0 required by .nvmrc")
	assert.ErrorContains(t, compareNodeVersions("20", "garbage"), "unexpected node version")
}

func TestBin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported")
	}
	dir := t.TempDir()
	local := filepath.Join(dir, ModulesDir, ".bin", "sass")
	writeFile(t, local, "#!/bin/sh\n", 0o755)

	path, err := Bin(dir, "sass")
	require.NoError(t, err)
	assert.Equal(t, local, path)

	_, err = Bin(dir, "definitely-not-a-node-tool")
	assert.ErrorContains(t, err, "is not found")
}

func TestCheckNodeVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported")
	}
	dir := t.TempDir()
	// No .nvmrc, nothing to check.
	require.NoError(t, CheckNodeVersion(dir))

	writeFile(t, filepath.Join(dir, NvmrcFileName), "20\n", 0o644)
	writeFile(t, filepath.Join(dir, ModulesDir, ".bin", "node"),
		"#!/bin/sh\necho v18.0.0\n", 0o755)
	assert.EqualError(t, CheckNodeVersion(dir),
		"node 18.0.0 is older than 20.0.0 required by .nvmrc")

	writeFile(t, filepath.Join(dir, ModulesDir, ".bin", "node"),
		"#!/bin/sh\necho v22.3.0\n", 0o755)
	assert.NoError(t, CheckNodeVersion(dir))
}
