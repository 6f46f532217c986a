// Package filesystem provides lightweight value handles for files
// ([File]) and directories ([Directory]). A handle binds a path to the
// operations that can be performed on it and holds no state beyond that
// path, every operation acquires and releases any operating system resources
// within its own call.
package filesystem

import (
	"os"
	"time"

	"github.com/desertwitch/gofs/internal/finder"
)

const (
	// DefaultFileMode is the mode new files are created with, and the mode
	// reported on platforms without Unix permission bits.
	DefaultFileMode os.FileMode = 0o666

	// DefaultDirMode is the mode new directories are created with, and the
	// mode reported on platforms without Unix permission bits.
	DefaultDirMode os.FileMode = 0o777

	unixBasePerms = 0o777
)

type osProvider interface {
	Chtimes(name string, atime time.Time, mtime time.Time) error
	EvalSymlinks(path string) (string, error)
	Lstat(name string) (os.FileInfo, error)
	Mkdir(name string, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
	Symlink(oldname, newname string) error
}

// Handler is the principal implementation of the filesystem operations. It
// creates the [File] and [Directory] handles, which delegate to it.
type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
	fileMode    os.FileMode
	dirMode     os.FileMode
}

// NewHandler returns a pointer to a new [Handler]. New files are created
// with fileMode, new directories (when no explicit mode is given) with
// dirMode, both subject to the process umask.
func NewHandler(osHandler osProvider, unixHandler unixProvider, fileMode os.FileMode, dirMode os.FileMode) *Handler {
	return &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
		fileMode:    fileMode,
		dirMode:     dirMode,
	}
}

// File returns a [File] handle for a path.
func (h *Handler) File(path string) File {
	return File{
		path:    path,
		handler: h,
	}
}

// Directory returns a [Directory] handle for a path.
func (h *Handler) Directory(path string) Directory {
	return Directory{
		path:    path,
		handler: h,
	}
}

// Finder returns a pointer to a new [finder.Finder] operating through the
// same operating system provider as the [Handler].
func (h *Handler) Finder() *finder.Finder {
	return finder.NewFinder(h.osHandler)
}

// FileMode returns the mode new files are created with.
func (h *Handler) FileMode() os.FileMode {
	return h.fileMode
}

// DirMode returns the mode new directories are created with.
func (h *Handler) DirMode() os.FileMode {
	return h.dirMode
}
