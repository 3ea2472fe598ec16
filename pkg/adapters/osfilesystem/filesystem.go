// Package osfilesystem provides a filesystem implementation using the os package.
package osfilesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/user/teapotcast/pkg/ports"
)

const (
	defaultDirPerm  fs.FileMode = 0o755
	defaultFilePerm fs.FileMode = 0o644
)

// FileSystem implements ports.FileSystem using the os package. Files are
// written to a temporary sibling and renamed into place, so a reader
// watching the directory never sees a partially written frame.
type FileSystem struct {
	DirPerm  fs.FileMode
	FilePerm fs.FileMode
}

// New creates a new FileSystem.
func New() *FileSystem {
	return &FileSystem{DirPerm: defaultDirPerm, FilePerm: defaultFilePerm}
}

// WriteFile writes data to path, creating parent directories if necessary.
func (f *FileSystem) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := f.MkdirAll(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(name, f.filePerm()); err != nil {
		os.Remove(name)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

// MkdirAll creates a directory and all parent directories.
func (f *FileSystem) MkdirAll(path string) error {
	if path == "" || path == "." {
		return nil
	}
	perm := f.DirPerm
	if perm == 0 {
		perm = defaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Exists checks if a file or directory exists.
func (f *FileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (f *FileSystem) filePerm() fs.FileMode {
	if f.FilePerm == 0 {
		return defaultFilePerm
	}
	return f.FilePerm
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
