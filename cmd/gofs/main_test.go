package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the command line with an empty configuration file.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	config := filepath.Join(t.TempDir(), "gofs.conf")
	require.NoError(t, os.WriteFile(config, []byte("GOFS_LOG_LEVEL=error\n"), 0o644))

	var stdout, stderr bytes.Buffer

	a := newApp(&stdout, &stderr)
	a.stdin = strings.NewReader(stdin)
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(append([]string{"--config", config}, args...))

	err := root.Execute()

	return stdout.String(), err
}

func writeTestTree(t *testing.T, root string) {
	t.Helper()

	for _, name := range []string{"1.txt", "a/2.txt", "a/b/3.txt", "c/4.html"} {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("hello world"), 0o644))
	}
}

// TestCLI_Find tests the find command and its flags.
func TestCLI_Find(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestTree(t, root)

	t.Run("Success_Files", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "", "find", root, "-t", "f", "-n", "*.txt")
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			filepath.Join(root, "1.txt"),
			filepath.Join(root, "a", "2.txt"),
			filepath.Join(root, "a", "b", "3.txt"),
		}, "\n")+"\n", out)
	})

	t.Run("Success_Limit", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "", "find", root, "--limit", "2")
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
	})

	t.Run("Success_Long", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "", "find", root, "-l", "-n", "4.html")
		require.NoError(t, err)
		assert.Contains(t, out, "file")
		assert.Contains(t, out, "11 B")
	})

	t.Run("Fail_MissingRoot", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, "", "find", filepath.Join(root, "missing"))
		require.Error(t, err)
	})

	t.Run("Fail_InteractiveWithoutTerminal", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, "", "find", root, "-i")
		require.ErrorIs(t, err, errNotTerminal)
	})

	t.Run("Fail_InvalidType", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, "", "find", root, "-t", "x")
		require.Error(t, err)
	})
}

// TestCLI_Content tests the content manipulating commands.
func TestCLI_Content(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "test.txt")

	out, err := run(t, "", "put", path, "world")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = run(t, "hello ", "put", "--prepend", path)
	require.NoError(t, err)
	assert.Equal(t, "11\n", out)

	out, err = run(t, "", "put", "-a", path, "\n")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, "", "get", path)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)

	out, err = run(t, "", "size", "-b", root)
	require.NoError(t, err)
	assert.Equal(t, "12\n", out)

	out, err = run(t, "", "macro", "lines", path)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	copied := filepath.Join(root, "copy.txt")
	_, err = run(t, "", "cp", path, copied)
	require.NoError(t, err)

	out, err = run(t, "", "hash", path, copied)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Fields(lines[0])[0], strings.Fields(lines[1])[0])

	out, err = run(t, "", "macro", "duplicates", root)
	require.NoError(t, err)

	var groups map[string][]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &groups))
	require.Len(t, groups, 1)

	_, err = run(t, "", "rm", path, copied)
	require.NoError(t, err)
	assert.NoFileExists(t, path)
	assert.NoFileExists(t, copied)

	_, err = run(t, "", "get", path)
	require.Error(t, err)
}

// TestCLI_Directories tests the directory commands.
func TestCLI_Directories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "a", "b")

	_, err := run(t, "", "mkdir", dir)
	require.Error(t, err)

	_, err = run(t, "", "mkdir", "-p", dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	_, err = run(t, "", "touch", filepath.Join(dir, "empty"))
	require.NoError(t, err)

	_, err = run(t, "", "mkdir", filepath.Join(root, "c"))
	require.NoError(t, err)

	out, err := run(t, "", "macro", "empty", root)
	require.NoError(t, err)

	var empty []string
	require.NoError(t, yaml.Unmarshal([]byte(out), &empty))
	assert.Equal(t, []string{
		filepath.Join(root, "a", "b", "empty"),
		filepath.Join(root, "c"),
	}, empty)

	_, err = run(t, "", "mv", filepath.Join(root, "a"), filepath.Join(root, "moved"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "moved", "b", "empty"))

	_, err = run(t, "", "clean", filepath.Join(root, "moved"))
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(root, "moved", "b"))
	assert.DirExists(t, filepath.Join(root, "moved"))
}

// TestCLI_Stat tests the metadata reports.
func TestCLI_Stat(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestTree(t, root)

	out, err := run(t, "", "stat", "--yaml", "--hash", filepath.Join(root, "1.txt"))
	require.NoError(t, err)

	var report statReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "file", report.Type)
	assert.Equal(t, uint64(11), report.Size)
	assert.Equal(t, "text/plain; charset=utf-8", report.MimeType)
	assert.Len(t, report.Hash, 64)

	out, err = run(t, "", "stat", root)
	require.NoError(t, err)
	assert.Contains(t, out, "44 bytes")
	assert.Contains(t, out, "dir")
}

// TestCLI_Macros tests the listing of macros and unknown macro calls.
func TestCLI_Macros(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "macros")
	require.NoError(t, err)
	assert.Equal(t, "duplicates\nempty\nlines\n", out)

	_, err = run(t, "", "macro", "missing")
	require.Error(t, err)

	_, err = run(t, "", "macro", "lines")
	require.ErrorIs(t, err, errMacroArgs)
}

// TestParseMode tests the parsing of octal modes.
func TestParseMode(t *testing.T) {
	t.Parallel()

	mode, err := parseMode("755")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), mode)

	mode, err = parseMode("0o640")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), mode)

	_, err = parseMode("999")
	require.ErrorIs(t, err, errInvalidMode)

	_, err = parseMode("1777")
	require.ErrorIs(t, err, errInvalidMode)
}
