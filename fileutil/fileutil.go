// Package fileutil provides small filesystem helpers shared by the
// agentrix commands and server.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permissions
const (
	// DirPermission is the default permission for creating directories (rwxr-x---)
	DirPermission = 0750
	// FilePermission is the default permission for creating files (rw-r--r--)
	FilePermission = 0644
)

// ownerWrite is the owner-write mode bit (u+w).
const ownerWrite os.FileMode = 0200

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPermission); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// EnsureWritable sets the owner-write bit on path if it is missing.
// All other mode bits are left untouched. The adjustment is one-way;
// callers that patch read-only checkouts want the file to stay
// writable afterwards.
func EnsureWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	mode := info.Mode()
	if mode&ownerWrite != 0 {
		return nil
	}

	if err := os.Chmod(path, mode|ownerWrite); err != nil {
		return fmt.Errorf("failed to change file mode: %w", err)
	}
	return nil
}

// FileExists checks if a file exists in a directory.
// Returns true if the file exists, false otherwise.
func FileExists(dir string, filename string) bool {
	_, err := os.Stat(filepath.Join(dir, filename))
	return err == nil
}
