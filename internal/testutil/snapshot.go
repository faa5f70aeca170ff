package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// NewSnapshotDir creates a temp directory and writes the given snapshot
// files into it. Keys are file names, values are raw JSON content.
func NewSnapshotDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write snapshot %s: %v", name, err)
		}
	}
	return dir
}
