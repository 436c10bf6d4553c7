package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic copy files.
	TempFilePrefix = ".shelf-tmp-"
)

// copyFileAtomic copies src to dst by writing a temp file next to dst and then
// renaming it over dst. The copy keeps the mode bits and modification time of src.
func copyFileAtomic(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	// Create a temporary file in the same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(filepath.Dir(dst), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up if we fail before rename

	if _, err := io.Copy(tmpFile, in); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	mtime := info.ModTime()
	if err := os.Chtimes(tmpFile.Name(), time.Now(), mtime); err != nil {
		return fmt.Errorf("failed to set times on temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), dst); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", dst, err)
	}

	return nil
}
