package gofs

import (
	"fmt"
	"os"

	"github.com/desertwitch/gofs/internal/schema"
)

// Put creates or truncates a file and writes data to it, returning the
// amount of bytes written.
func (f *Filesystem) Put(path string, data []byte) (int, error) {
	return f.File(path).Put(data)
}

// Get returns the content of a file.
func (f *Filesystem) Get(path string) ([]byte, error) {
	return f.File(path).Get()
}

// Append writes data to the end of a file, returning the amount of bytes
// appended.
func (f *Filesystem) Append(path string, data []byte) (int, error) {
	return f.File(path).Append(data)
}

// Prepend writes data to the start of a file, returning its new total length.
func (f *Filesystem) Prepend(path string, data []byte) (int, error) {
	return f.File(path).Prepend(data)
}

// Exists returns true if all of the paths exist. Without any paths, it
// returns false.
func (f *Filesystem) Exists(paths ...string) (bool, error) {
	if len(paths) == 0 {
		return false, nil
	}

	for _, path := range paths {
		exists, err := f.File(path).Exists()
		if err != nil || !exists {
			return false, err
		}
	}

	return true, nil
}

// Delete removes all of the paths, directories recursively. Paths that do
// not exist count as deleted. It stops at the first failure.
func (f *Filesystem) Delete(paths ...string) (bool, error) {
	for _, path := range paths {
		typ, err := f.File(path).Type()
		if err != nil {
			return false, err
		}

		var ok bool
		if typ == schema.TypeDir {
			ok, err = f.Directory(path).Delete()
		} else {
			ok, err = f.File(path).Delete()
		}
		if err != nil || !ok {
			return false, err
		}
	}

	return true, nil
}

// IsFile returns true if a path is a regular file (following links).
func (f *Filesystem) IsFile(path string) bool {
	return f.File(path).IsFile()
}

// IsDirectory returns true if a path is a directory (following links).
func (f *Filesystem) IsDirectory(path string) bool {
	return f.Directory(path).IsDirectory()
}

// Hash returns the hexadecimal BLAKE3-256 sum of a file's content.
func (f *Filesystem) Hash(path string) (string, error) {
	return f.File(path).Hash()
}

// Copy copies a file or (recursively) a directory to a destination, whose
// parent directory must exist.
func (f *Filesystem) Copy(src string, dest string) (bool, error) {
	if f.IsDirectory(src) {
		return f.Directory(src).Copy(dest)
	}

	return f.File(src).Copy(dest)
}

// Move renames a file or directory to a destination, whose parent directory
// must exist.
func (f *Filesystem) Move(src string, dest string) (bool, error) {
	typ, err := f.File(src).Type()
	if err != nil {
		return false, err
	}

	if typ == schema.TypeDir {
		return f.Directory(src).Move(dest)
	}

	return f.File(src).Move(dest)
}

// Chmod returns the permission bits of a path without a mode argument. With
// a mode argument, it sets them and returns the previous ones.
func (f *Filesystem) Chmod(path string, mode ...os.FileMode) (os.FileMode, error) {
	if len(mode) > 1 {
		return 0, schema.NewPathError(ErrConfiguration, "chmod", path, fmt.Errorf("expected at most one mode, got %d", len(mode)))
	}

	if f.IsDirectory(path) {
		if len(mode) == 0 {
			return f.Directory(path).Permissions()
		}

		return f.Directory(path).Chmod(mode[0])
	}

	if len(mode) == 0 {
		return f.File(path).Permissions()
	}

	return f.File(path).Chmod(mode[0])
}

// Size returns the size of a file, or the total size of all files contained
// in a directory.
func (f *Filesystem) Size(path string) (uint64, error) {
	if f.IsDirectory(path) {
		return f.Directory(path).Size()
	}

	return f.File(path).Size()
}
