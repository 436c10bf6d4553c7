package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot walks upward from startDir looking for a library, recognised by
// its system directory. It returns the absolute library root.
func FindRoot(startDir, systemDir string) (string, error) {
	if systemDir == "" {
		systemDir = DefaultSystemDir
	}
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, systemDir)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no library found above %s", abs)
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
