package test

import (
	"path/filepath"
	"testing"
)

// TmpFile returns the path to a fresh database file for one test.
// The directory is cleaned up when the test finishes.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "splitpot.db")
}
