package util

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// FsCopyFileChangePerms copies file from the certain FS with changing perms.
func FsCopyFileChangePerms(fsys fs.FS, src, dst string, perms int) error {
	data, err := fs.ReadFile(fsys, src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, fs.FileMode(perms))
}

// FsCopyDir copies root directory of fsys into dst. Regular files get 0644
// permissions, directories get 0755.
func FsCopyDir(fsys fs.FS, root, dst string) error {
	if _, err := fs.Stat(fsys, root); err != nil {
		return err
	}
	return fs.WalkDir(fsys, root, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := filePath[len(root):]
		if rel != "" && rel[0] == '/' {
			rel = rel[1:]
		}
		target := filepath.Join(dst, filepath.FromSlash(rel))
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if err := FsCopyFileChangePerms(fsys, path.Clean(filePath), target, 0o644); err != nil {
			return fmt.Errorf("failed to copy %s: %w", filePath, err)
		}
		return nil
	})
}

// FilesEqual returns true if both files exist and have the same content.
func FilesEqual(left, right string) bool {
	leftData, err := os.ReadFile(left)
	if err != nil {
		return false
	}
	rightData, err := os.ReadFile(right)
	if err != nil {
		return false
	}
	return bytes.Equal(leftData, rightData)
}
