package finder

import (
	"os"
	"path/filepath"

	"github.com/stretchr/testify/mock"
)

// mockOsProvider is a mock implementation of [osProvider].
type mockOsProvider struct {
	mock.Mock
}

func (m *mockOsProvider) EvalSymlinks(path string) (string, error) {
	args := m.Called(path)

	return args.String(0), args.Error(1)
}

func (m *mockOsProvider) ReadDir(name string) ([]os.DirEntry, error) {
	args := m.Called(name)

	entries, _ := args.Get(0).([]os.DirEntry)

	return entries, args.Error(1)
}

func (m *mockOsProvider) Stat(name string) (os.FileInfo, error) {
	args := m.Called(name)

	info, _ := args.Get(0).(os.FileInfo)

	return info, args.Error(1)
}

// countingOsProvider passes through to the operating system and counts the
// directory reads.
type countingOsProvider struct {
	reads []string
}

func (c *countingOsProvider) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

func (c *countingOsProvider) ReadDir(name string) ([]os.DirEntry, error) {
	c.reads = append(c.reads, name)

	return os.ReadDir(name)
}

func (c *countingOsProvider) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
