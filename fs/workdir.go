package fs

import (
	"os"
	"path/filepath"
)

// WorkDir is a temporary directory for intermediate files. The caller owns
// its lifecycle and must call Close to remove it.
type WorkDir struct {
	path string
}

// NewWorkDir creates a fresh directory under parent. An empty parent uses
// the system temporary directory.
func NewWorkDir(parent string) (*WorkDir, error) {
	path, err := os.MkdirTemp(parent, "urlcast-")
	if err != nil {
		return nil, err
	}
	return &WorkDir{path: path}, nil
}

// Path returns the directory path.
func (w *WorkDir) Path() string {
	return w.path
}

// Join returns the path of name inside the directory.
func (w *WorkDir) Join(name string) string {
	return filepath.Join(w.path, name)
}

// CreateTemp creates a new file whose name matches pattern, as in
// os.CreateTemp.
func (w *WorkDir) CreateTemp(pattern string) (*os.File, error) {
	return os.CreateTemp(w.path, pattern)
}

// Close removes the directory and everything in it.
func (w *WorkDir) Close() error {
	return os.RemoveAll(w.path)
}
