package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireFileExists asserts that a file exists and optionally checks its content
func RequireFileExists(t *testing.T, path string, checks ...func(content string)) {
	t.Helper()

	require.FileExists(t, path, "File should exist: %s", path)

	if len(checks) > 0 {
		content, err := os.ReadFile(path)
		require.NoError(t, err, "Failed to read file: %s", path)

		for _, check := range checks {
			check(string(content))
		}
	}
}

// RequireFileContains returns a check function that verifies file contains text
func RequireFileContains(t *testing.T, expected string) func(string) {
	return func(content string) {
		require.Contains(t, content, expected, "File should contain: %s", expected)
	}
}

// RequireNoFile asserts that nothing exists at path
func RequireNoFile(t *testing.T, path string) {
	t.Helper()

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "Path should not exist: %s", path)
}
