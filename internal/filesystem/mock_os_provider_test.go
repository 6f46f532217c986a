package filesystem

import (
	"os"

	"github.com/desertwitch/gofs/internal/schema"
	"github.com/stretchr/testify/mock"
)

// mockOsProvider passes through to the operating system, except for the
// calls that are mocked to fail.
type mockOsProvider struct {
	schema.OS
	mock.Mock
}

func (m *mockOsProvider) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	args := m.Called(name, flag, perm)

	file, _ := args.Get(0).(*os.File)

	return file, args.Error(1)
}

func (m *mockOsProvider) ReadDir(name string) ([]os.DirEntry, error) {
	args := m.Called(name)

	entries, _ := args.Get(0).([]os.DirEntry)

	return entries, args.Error(1)
}

func (m *mockOsProvider) Remove(name string) error {
	args := m.Called(name)

	return args.Error(0)
}

func (m *mockOsProvider) Rename(oldpath, newpath string) error {
	args := m.Called(oldpath, newpath)

	return args.Error(0)
}
