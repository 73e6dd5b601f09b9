package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
}

// FakeEditor writes an executable shell script that records each path it is
// called with to a file and exits with exitCode. It returns the script path
// and the record file. Tests using it are skipped on Windows.
func FakeEditor(t *testing.T, exitCode int) (editor string, record string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake editor script needs a POSIX shell")
	}

	dir := t.TempDir()
	editor = filepath.Join(dir, "editor.sh")
	record = filepath.Join(dir, "opened.txt")
	script := fmt.Sprintf("#!/bin/sh\necho \"$1\" >> %q\nexit %d\n", record, exitCode)
	require.NoError(t, os.WriteFile(editor, []byte(script), 0755))
	return editor, record
}
