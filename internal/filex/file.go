// Package filex holds filesystem helpers for locating the journal's data files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir and any missing parents. Existing directories are
// left untouched.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// EnsureParentDir creates the directory that will contain path and returns it.
func EnsureParentDir(path string) (string, error) {
	return EnsureDir(filepath.Dir(path))
}

// IsMemoryDSN reports whether dsn names an in-memory SQLite database, which
// has no directory to create.
func IsMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
