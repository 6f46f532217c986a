package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/gofs/internal/schema"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	return NewHandler(&schema.OS{}, &schema.Unix{}, DefaultFileMode, DefaultDirMode)
}

// writeFile creates a file with content below root, creating its parents.
func writeFile(t *testing.T, root string, name string, content string) string {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(name))

	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))

	return full
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}
