package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTempFile creates a file with the given content in a fresh temporary directory
// and returns its path.
func CreateTempFile(t testing.TB, filename, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	err := os.WriteFile(filePath, []byte(content), 0600)
	require.NoError(t, err, "Should create temp file successfully")

	return filePath
}

// CreateTempDir creates a temporary directory holding files, keyed by relative path.
func CreateTempDir(t testing.TB, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()

	for filename, content := range files {
		filePath := filepath.Join(tmpDir, filename)

		if dir := filepath.Dir(filePath); dir != tmpDir {
			require.NoError(t, os.MkdirAll(dir, 0755), "Should create directory %s", dir)
		}
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0600), "Should create file %s", filename)
	}

	return tmpDir
}
