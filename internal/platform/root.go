package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// Vault root markers.
const (
	SystemDir  = ".quill"
	ConfigFile = "quill.yaml"
)

// ErrRootNotFound is returned by FindRoot when no marker exists up to the filesystem root.
var ErrRootNotFound = errors.New("vault root not found")

// FindRoot walks upwards from startDir looking for a .quill directory or a
// quill.yaml file, and returns the absolute path of the first directory holding one.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if hasFile(dir, SystemDir) || hasFile(dir, ConfigFile) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
