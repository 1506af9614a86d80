package testutil

import (
	"os"
	"testing"

	"github.com/pseudomuto/definer/pkg/schema"
	"github.com/stretchr/testify/require"
)

// RequireFileExists asserts that a file exists and optionally checks its content
func RequireFileExists(t *testing.T, path string, checks ...func(content string)) {
	t.Helper()

	require.FileExists(t, path, "File should exist: %s", path)

	if len(checks) > 0 {
		content, err := os.ReadFile(path)
		require.NoError(t, err, "Failed to read file: %s", path)

		contentStr := string(content)
		for _, check := range checks {
			check(contentStr)
		}
	}
}

// RequireFileContains returns a check function that verifies file contains text
func RequireFileContains(t *testing.T, expected string) func(string) {
	return func(content string) {
		require.Contains(t, content, expected, "File should contain: %s", expected)
	}
}

// RequireFileNotContains returns a check function that verifies file doesn't contain text
func RequireFileNotContains(t *testing.T, unexpected string) func(string) {
	return func(content string) {
		require.NotContains(t, content, unexpected, "File should not contain: %s", unexpected)
	}
}

// RequireSchemaEqual asserts that two schema scripts define the same objects
// with the same properties.
func RequireSchemaEqual(t *testing.T, expected, actual string) {
	t.Helper()

	expectedSchema, err := schema.ParseString(expected)
	require.NoError(t, err, "Expected schema should parse")

	actualSchema, err := schema.ParseString(actual)
	require.NoError(t, err, "Actual schema should parse")

	require.Empty(t, schema.Diff(expectedSchema, actualSchema), "Schemas should not differ")
}

// RequireError asserts that an error occurred and optionally checks the message
func RequireError(t *testing.T, err error, msgContains ...string) {
	t.Helper()

	require.Error(t, err, "Expected an error")

	for _, msg := range msgContains {
		require.Contains(t, err.Error(), msg, "Error message should contain: %s", msg)
	}
}
