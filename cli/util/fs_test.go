package util

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFsCopyDir(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/theme/.nvmrc":             {Data: []byte("20\n")},
		"templates/theme/sass/style.scss":    {Data: []byte("body { margin: 0; }\n")},
		"templates/theme/js/src/main.js":     {Data: []byte("'use strict';\n")},
		"templates/other/ignored.txt":        {Data: []byte("x")},
		"templates/theme/{{.name}}.info.yml": {Data: []byte("name: {{.name}}\n")},
	}
	dst := t.TempDir()
	require.NoError(t, FsCopyDir(fsys, "templates/theme", dst))

	assert.FileExists(t, filepath.Join(dst, ".nvmrc"))
	assert.FileExists(t, filepath.Join(dst, "sass", "style.scss"))
	assert.FileExists(t, filepath.Join(dst, "js", "src", "main.js"))
	assert.FileExists(t, filepath.Join(dst, "{{.name}}.info.yml"))
	assert.NoFileExists(t, filepath.Join(dst, "ignored.txt"))

	info, err := os.Stat(filepath.Join(dst, "sass", "style.scss"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	assert.Error(t, FsCopyDir(fsys, "templates/missing", dst))
}

func TestFilesEqual(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	require.NoError(t, os.WriteFile(a, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("different"), 0o644))

	assert.True(t, FilesEqual(a, b))
	assert.False(t, FilesEqual(a, c))
	assert.False(t, FilesEqual(a, filepath.Join(dir, "missing")))
}
