package services

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTempCSV writes CSV content into a temp file and returns its
// path. The file is removed with the test's temp dir.
func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}
