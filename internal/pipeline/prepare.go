package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// PrepareDirs creates each directory (with parents) if it does not exist and
// returns the ones it created. Existing directories are left alone.
func PrepareDirs(dirs ...string) ([]string, error) {
	var created []string
	for _, d := range dirs {
		fi, err := os.Stat(d)
		switch {
		case err == nil && fi.IsDir():
			continue
		case err == nil:
			return created, fmt.Errorf("%s exists and is not a directory", d)
		case !errors.Is(err, fs.ErrNotExist):
			return created, err
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			return created, fmt.Errorf("cannot create directory %s: %w", d, err)
		}
		created = append(created, d)
	}
	return created, nil
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directories.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
