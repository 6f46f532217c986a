package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/desertwitch/gofs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestDirectory_Create tests creation of directories.
func TestDirectory_Create(t *testing.T) {
	t.Parallel()

	h := newTestHandler()

	t.Run("Success_New", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new")

		ok, err := h.Directory(path).Create(0, false)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.DirExists(t, path)
	})

	t.Run("Success_Existing", func(t *testing.T) {
		t.Parallel()

		ok, err := h.Directory(t.TempDir()).Create(0o755, false)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Success_Recursive", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "c")

		ok, err := h.Directory(path).Create(0o755, true)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.DirExists(t, path)
	})

	t.Run("Fail_MissingParent", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b")

		ok, err := h.Directory(path).Create(0o755, false)
		require.ErrorIs(t, err, schema.ErrNotFound)
		assert.False(t, ok)
	})

	t.Run("Fail_ExistingFile", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "file", "test")

		ok, err := h.Directory(path).Create(0o755, false)
		require.ErrorIs(t, err, schema.ErrIO)
		require.ErrorIs(t, err, ErrNotDirectory)
		assert.False(t, ok)
	})
}

// TestDirectory_CleanDelete tests the removal of directory content.
func TestDirectory_CleanDelete(t *testing.T) {
	t.Parallel()

	h := newTestHandler()

	t.Run("Success_Clean", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "a.txt", "a")
		writeFile(t, root, "sub/b.txt", "b")

		require.NoError(t, h.Directory(root).Clean())

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.DirExists(t, root)
	})

	t.Run("Fail_CleanReadError", func(t *testing.T) {
		t.Parallel()

		osMock := &mockOsProvider{}
		osMock.On("ReadDir", "/test/dir").Return(nil, fs.ErrPermission)

		mh := NewHandler(osMock, &schema.Unix{}, DefaultFileMode, DefaultDirMode)

		err := mh.Directory("/test/dir").Clean()
		require.ErrorIs(t, err, schema.ErrIO)
		require.ErrorIs(t, err, fs.ErrPermission)

		osMock.AssertExpectations(t)
	})

	t.Run("Success_Delete", func(t *testing.T) {
		t.Parallel()

		root := filepath.Join(t.TempDir(), "dir")
		writeFile(t, root, "sub/sub/a.txt", "a")

		ok, err := h.Directory(root).Delete()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoDirExists(t, root)
	})

	t.Run("Success_DeleteMissing", func(t *testing.T) {
		t.Parallel()

		ok, err := h.Directory(filepath.Join(t.TempDir(), "missing")).Delete()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Fail_DeleteFile", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "file", "test")

		ok, err := h.Directory(path).Delete()
		require.ErrorIs(t, err, ErrNotDirectory)
		assert.False(t, ok)
		assert.FileExists(t, path)
	})
}

// TestDirectory_Size tests the recursive size aggregation.
func TestDirectory_Size(t *testing.T) {
	t.Parallel()

	h := newTestHandler()

	t.Run("Success_Nested", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "1.txt", "hello world")
		writeFile(t, root, "a/2.txt", "hello world")
		writeFile(t, root, "a/b/3.txt", "hello world")
		writeFile(t, root, "c/b/4.txt", "hello world")

		size, err := h.Directory(root).Size()
		require.NoError(t, err)
		assert.Equal(t, uint64(44), size)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		t.Parallel()

		size, err := h.Directory(t.TempDir()).Size()
		require.NoError(t, err)
		assert.Zero(t, size)
	})

	t.Run("Fail_Missing", func(t *testing.T) {
		t.Parallel()

		_, err := h.Directory(filepath.Join(t.TempDir(), "missing")).Size()
		require.ErrorIs(t, err, schema.ErrNotFound)
	})

	t.Run("Fail_File", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "file", "test")

		_, err := h.Directory(path).Size()
		require.ErrorIs(t, err, ErrNotDirectory)
	})
}

// TestDirectory_IsEmpty tests the emptiness check of directories.
func TestDirectory_IsEmpty(t *testing.T) {
	t.Parallel()

	h := newTestHandler()

	t.Run("Success_Empty", func(t *testing.T) {
		t.Parallel()

		empty, err := h.Directory(t.TempDir()).IsEmpty()
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("Success_ZeroByteFile", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "zero", "")

		size, err := h.Directory(root).Size()
		require.NoError(t, err)
		assert.Zero(t, size)

		empty, err := h.Directory(root).IsEmpty()
		require.NoError(t, err)
		assert.False(t, empty)
	})

	t.Run("Fail_Missing", func(t *testing.T) {
		t.Parallel()

		_, err := h.Directory(filepath.Join(t.TempDir(), "missing")).IsEmpty()
		require.ErrorIs(t, err, schema.ErrNotFound)
	})

	t.Run("Fail_File", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "file", "test")

		_, err := h.Directory(path).IsEmpty()
		require.ErrorIs(t, err, ErrNotDirectory)
	})
}

// TestDirectory_Copy tests the recursive copying of directories.
func TestDirectory_Copy(t *testing.T) {
	t.Parallel()

	h := newTestHandler()

	t.Run("Success_Tree", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		src := filepath.Join(root, "src")
		writeFile(t, src, "1.txt", "one")
		writeFile(t, src, "a/2.txt", "two")
		writeFile(t, src, "a/b/3.txt", "three")
		require.NoError(t, os.MkdirAll(filepath.Join(src, "empty"), 0o755))

		dst := filepath.Join(root, "dst")

		ok, err := h.Directory(src).Copy(dst)
		require.NoError(t, err)
		assert.True(t, ok)

		assert.Equal(t, "one", readFile(t, filepath.Join(dst, "1.txt")))
		assert.Equal(t, "two", readFile(t, filepath.Join(dst, "a", "2.txt")))
		assert.Equal(t, "three", readFile(t, filepath.Join(dst, "a", "b", "3.txt")))
		assert.DirExists(t, filepath.Join(dst, "empty"))
		assert.FileExists(t, filepath.Join(src, "a", "b", "3.txt"))

		srcSize, err := h.Directory(src).Size()
		require.NoError(t, err)
		dstSize, err := h.Directory(dst).Size()
		require.NoError(t, err)
		assert.Equal(t, srcSize, dstSize)
	})

	t.Run("Success_ReadOnlyDirectory", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("no unix permissions")
		}

		root := t.TempDir()
		src := filepath.Join(root, "src")
		writeFile(t, src, "ro/1.txt", "one")
		require.NoError(t, os.Chmod(filepath.Join(src, "ro"), 0o555))
		t.Cleanup(func() {
			_ = os.Chmod(filepath.Join(src, "ro"), 0o755)
			_ = os.Chmod(filepath.Join(root, "dst", "ro"), 0o755)
		})

		dst := filepath.Join(root, "dst")

		_, err := h.Directory(src).Copy(dst)
		require.NoError(t, err)
		assert.Equal(t, "one", readFile(t, filepath.Join(dst, "ro", "1.txt")))

		perms, err := h.Directory(filepath.Join(dst, "ro")).Permissions()
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o555), perms)
	})

	t.Run("Success_Symlink", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("symlinks need privileges")
		}

		root := t.TempDir()
		src := filepath.Join(root, "src")
		writeFile(t, src, "1.txt", "one")
		require.NoError(t, os.Symlink("1.txt", filepath.Join(src, "link")))

		dst := filepath.Join(root, "dst")

		_, err := h.Directory(src).Copy(dst)
		require.NoError(t, err)

		target, err := os.Readlink(filepath.Join(dst, "link"))
		require.NoError(t, err)
		assert.Equal(t, "1.txt", target)
	})

	t.Run("Fail_IntoSelf", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "1.txt", "one")

		ok, err := h.Directory(root).Copy(filepath.Join(root, "sub"))
		require.ErrorIs(t, err, ErrCopyIntoSelf)
		assert.False(t, ok)
	})

	t.Run("Fail_MissingParent", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		src := filepath.Join(root, "src")
		writeFile(t, src, "1.txt", "one")

		ok, err := h.Directory(src).Copy(filepath.Join(root, "missing", "dst"))
		require.ErrorIs(t, err, schema.ErrNotFound)
		assert.False(t, ok)
	})

	t.Run("Fail_MissingSource", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()

		ok, err := h.Directory(filepath.Join(root, "missing")).Copy(filepath.Join(root, "dst"))
		require.ErrorIs(t, err, schema.ErrNotFound)
		assert.False(t, ok)
	})
}

// TestDirectory_Move tests the renaming of directories.
func TestDirectory_Move(t *testing.T) {
	t.Parallel()

	h := newTestHandler()

	t.Run("Success_Rename", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		src := filepath.Join(root, "src")
		writeFile(t, src, "a/1.txt", "one")
		dst := filepath.Join(root, "dst")

		ok, err := h.Directory(src).Move(dst)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoDirExists(t, src)
		assert.Equal(t, "one", readFile(t, filepath.Join(dst, "a", "1.txt")))
	})

	t.Run("Fail_IntoSelf", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()

		ok, err := h.Directory(root).Move(filepath.Join(root, "sub"))
		require.ErrorIs(t, err, ErrCopyIntoSelf)
		assert.False(t, ok)
	})

	t.Run("Fail_RenameError", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		src := filepath.Join(root, "src")
		require.NoError(t, os.Mkdir(src, 0o755))
		dst := filepath.Join(root, "dst")

		osMock := &mockOsProvider{}
		osMock.On("Rename", src, dst).Return(fs.ErrPermission)

		mh := NewHandler(osMock, &schema.Unix{}, DefaultFileMode, DefaultDirMode)

		ok, err := mh.Directory(src).Move(dst)
		require.ErrorIs(t, err, schema.ErrIO)
		require.ErrorIs(t, err, fs.ErrPermission)
		assert.False(t, ok)
		assert.DirExists(t, src)

		osMock.AssertExpectations(t)
		osMock.AssertNotCalled(t, "Remove", mock.Anything)
	})
}

// TestDirectory_Finders tests the preconfigured finders of a directory.
func TestDirectory_Finders(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	root := t.TempDir()
	writeFile(t, root, "1.txt", "one")
	writeFile(t, root, "a/2.txt", "two")

	seq, err := h.Directory(root).Files().Find()
	require.NoError(t, err)

	files, err := seq.Collect()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(root, "1.txt"), files[0].Path)
	assert.Equal(t, filepath.Join(root, "a", "2.txt"), files[1].Path)

	seq, err = h.Directory(root).Directories().Find()
	require.NoError(t, err)

	dirs, err := seq.Collect()
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	assert.Equal(t, filepath.Join(root, "a"), dirs[0].Path)
	assert.True(t, dirs[0].IsDir())
}

// TestDirectory_Accessors tests the simple accessors of a directory.
func TestDirectory_Accessors(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	root := t.TempDir()
	d := h.Directory(root)

	assert.Equal(t, root, d.Path())
	assert.Equal(t, filepath.Base(root), d.Basename())
	assert.True(t, d.IsDirectory())
	assert.False(t, h.Directory(filepath.Join(root, "missing")).IsDirectory())

	typ, err := d.Type()
	require.NoError(t, err)
	assert.Equal(t, "dir", typ.String())

	_, err = d.LastModified()
	require.NoError(t, err)

	_, err = d.LastAccessed()
	require.NoError(t, err)

	if runtime.GOOS != "windows" {
		require.NoError(t, os.Chmod(root, 0o750))

		prev, err := d.Chmod(0o700)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o750), prev)

		perms, err := d.Permissions()
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), perms)
	}
}

// TestHelpers_IsWithin tests the containment check of paths.
func TestHelpers_IsWithin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base string
		path string
		want bool
	}{
		{"/a/b", "/a/b", true},
		{"/a/b", "/a/b/c", true},
		{"/a/b", "/a/bc", false},
		{"/a/b", "/a", false},
		{"/a/b", "/a/b/../c", false},
		{"/a/b", "/a/b/..c", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isWithin(filepath.FromSlash(tt.base), filepath.FromSlash(tt.path)), "%s in %s", tt.path, tt.base)
	}
}
