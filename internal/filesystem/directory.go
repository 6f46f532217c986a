package filesystem

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/desertwitch/gofs/internal/finder"
	"github.com/desertwitch/gofs/internal/pathing"
	"github.com/desertwitch/gofs/internal/schema"
)

// Directory is a value handle for a directory path. It is never mutated,
// operations like [Directory.Move] leave the handle pointing at the old path.
type Directory struct {
	path    string
	handler *Handler
}

// Path returns the path of the [Directory].
func (d Directory) Path() string {
	return d.path
}

// Exists returns true if the path exists (following links).
func (d Directory) Exists() (bool, error) {
	return d.handler.exists("exists", d.path)
}

// Type returns the [schema.EntryType] of the path (not following links),
// [schema.TypeNone] if it does not exist.
func (d Directory) Type() (schema.EntryType, error) {
	return d.handler.entryType("type", d.path)
}

// IsDirectory returns true if the path is a directory (following links).
func (d Directory) IsDirectory() bool {
	info, err := d.handler.osHandler.Stat(d.path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

// Create creates the directory with the given mode, or the default mode of
// the [Handler] if mode is 0. Missing parents are only created if recursive
// is set. An already existing directory is not an error, but returns false.
func (d Directory) Create(mode os.FileMode, recursive bool) (bool, error) {
	if mode == 0 {
		mode = d.handler.dirMode
	}

	info, err := d.handler.osHandler.Stat(d.path)
	if err == nil {
		if info.IsDir() {
			return false, nil
		}

		return false, schema.NewPathError(schema.ErrIO, "create", d.path, ErrNotDirectory)
	} else if !schema.IsNotExist(err) {
		return false, pathError("create", d.path, err)
	}

	if recursive {
		err = d.handler.osHandler.MkdirAll(d.path, mode)
	} else {
		err = d.handler.osHandler.Mkdir(d.path, mode)
	}
	if err != nil {
		return false, pathError("create", d.path, err)
	}

	return true, nil
}

// Clean removes all children of the directory, keeping the directory itself.
func (d Directory) Clean() error {
	entries, err := d.handler.osHandler.ReadDir(d.path)
	if err != nil {
		return pathError("clean", d.path, err)
	}

	for _, entry := range entries {
		child := filepath.Join(d.path, entry.Name())

		if err := d.handler.osHandler.RemoveAll(child); err != nil {
			return pathError("clean", child, err)
		}
	}

	return nil
}

// Delete recursively removes the directory. A directory that does not exist
// is already deleted, which counts as success.
func (d Directory) Delete() (bool, error) {
	info, err := d.handler.osHandler.Lstat(d.path)
	if err != nil {
		if schema.IsNotExist(err) {
			return true, nil
		}

		return false, pathError("delete", d.path, err)
	}

	if !info.IsDir() {
		return false, schema.NewPathError(schema.ErrIO, "delete", d.path, ErrNotDirectory)
	}

	if err := d.handler.osHandler.RemoveAll(d.path); err != nil {
		return false, pathError("delete", d.path, err)
	}

	return true, nil
}

// Copy recursively copies the directory to a destination, whose parent
// directory must exist. Files are copied verified, symbolic links are
// recreated as such.
func (d Directory) Copy(dest string) (bool, error) {
	if err := d.handler.copyTree("copy", d.path, dest); err != nil {
		return false, err
	}

	return true, nil
}

// Move renames the directory to a destination, whose parent directory must
// exist. Across filesystems it falls back to a recursive copy and removal of
// the source.
func (d Directory) Move(dest string) (bool, error) {
	if err := d.handler.checkTree("move", d.path, dest); err != nil {
		return false, err
	}

	err := d.handler.moveEntry("move", d.path, dest, func() error {
		return d.handler.copyTree("move", d.path, dest)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// IsEmpty checks if the directory has no entries at all. A directory holding
// only zero-byte files is not empty.
func (d Directory) IsEmpty() (bool, error) {
	info, err := d.handler.osHandler.Stat(d.path)
	if err != nil {
		return false, pathError("isempty", d.path, err)
	}
	if !info.IsDir() {
		return false, schema.NewPathError(schema.ErrIO, "isempty", d.path, ErrNotDirectory)
	}

	return d.handler.isEmptyFolder("isempty", d.path)
}

// Size returns the sum of the sizes of all regular files contained in the
// directory, at any depth.
func (d Directory) Size() (uint64, error) {
	info, err := d.handler.osHandler.Stat(d.path)
	if err != nil {
		return 0, pathError("size", d.path, err)
	}
	if !info.IsDir() {
		return 0, schema.NewPathError(schema.ErrIO, "size", d.path, ErrNotDirectory)
	}

	seq, err := d.Files().Strict().Find()
	if err != nil {
		return 0, err
	}

	var total uint64

	for m := range seq.All() {
		info, err := d.handler.osHandler.Lstat(m.Path)
		if err != nil {
			if schema.IsNotExist(err) {
				continue
			}

			return 0, pathError("size", m.Path, err)
		}

		total += handleSize(info.Size())
	}

	if err := seq.Err(); err != nil {
		return 0, err
	}

	return total, nil
}

// Permissions returns the permission bits of the directory.
func (d Directory) Permissions() (os.FileMode, error) {
	return d.handler.permissions("permissions", d.path, DefaultDirMode)
}

// Chmod sets the permission bits of the directory, returning the previous
// ones.
func (d Directory) Chmod(mode os.FileMode) (os.FileMode, error) {
	return d.handler.chmod("chmod", d.path, mode)
}

// LastModified returns the modification time of the directory.
func (d Directory) LastModified() (time.Time, error) {
	info, err := d.handler.osHandler.Stat(d.path)
	if err != nil {
		return time.Time{}, pathError("lastmodified", d.path, err)
	}

	return info.ModTime(), nil
}

// LastAccessed returns the access time of the directory.
func (d Directory) LastAccessed() (time.Time, error) {
	return d.handler.accessTime("lastaccessed", d.path)
}

// Metadata returns the [schema.Metadata] of the directory.
func (d Directory) Metadata() (*schema.Metadata, error) {
	return d.handler.metadata("metadata", d.path)
}

// Basename returns the last element of the path.
func (d Directory) Basename() string {
	return pathing.Basename(d.path)
}

// Files returns a [finder.Finder] for all regular files in the directory.
func (d Directory) Files() *finder.Finder {
	return d.handler.Finder().In(d.path).Files()
}

// Directories returns a [finder.Finder] for all subdirectories of the
// directory.
func (d Directory) Directories() *finder.Finder {
	return d.handler.Finder().In(d.path).Directories()
}

// checkTree verifies that a source is an existing directory and that the
// destination is not located inside of it.
func (h *Handler) checkTree(op string, src string, dst string) error {
	info, err := h.osHandler.Stat(src)
	if err != nil {
		return pathError(op, src, err)
	}
	if !info.IsDir() {
		return schema.NewPathError(schema.ErrIO, op, src, ErrNotDirectory)
	}

	if isWithin(src, dst) {
		return schema.NewPathError(schema.ErrIO, op, dst, ErrCopyIntoSelf)
	}

	return nil
}

type treeDir struct {
	path string
	mode os.FileMode
}

// copyTree recursively copies a directory. The permissions of the created
// directories are applied deepest first once all content is in place, so
// that read-only source directories do not prevent their own copying.
func (h *Handler) copyTree(op string, src string, dst string) error {
	if err := h.checkTree(op, src, dst); err != nil {
		return err
	}

	if err := h.ensureParent(op, dst); err != nil {
		return err
	}

	rootMode, err := h.permissions(op, src, DefaultDirMode)
	if err != nil {
		return err
	}

	if err := h.makeDir(op, dst); err != nil {
		return err
	}

	dirs := []treeDir{{path: dst, mode: rootMode}}

	seq, err := h.Finder().In(src).Strict().Find()
	if err != nil {
		return err
	}

	for m := range seq.All() {
		rel, err := filepath.Rel(src, m.Path)
		if err != nil {
			return schema.NewPathError(schema.ErrIO, op, m.Path, err)
		}
		target := filepath.Join(dst, rel)

		switch m.Type {
		case schema.TypeDir:
			mode, err := h.permissions(op, m.Path, DefaultDirMode)
			if err != nil {
				return err
			}
			if err := h.makeDir(op, target); err != nil {
				return err
			}
			dirs = append(dirs, treeDir{path: target, mode: mode})

		case schema.TypeFile:
			if err := h.copyFile(op, m.Path, target); err != nil {
				return err
			}

		case schema.TypeOther:
			if err := h.copyLink(op, m.Path, target); err != nil {
				return err
			}

		case schema.TypeNone:
		}
	}

	if err := seq.Err(); err != nil {
		return err
	}

	for _, dir := range slices.Backward(dirs) {
		if _, err := h.chmod(op, dir.path, dir.mode); err != nil {
			return err
		}
	}

	return nil
}

// makeDir creates a directory, accepting an already existing one.
func (h *Handler) makeDir(op string, path string) error {
	if err := h.osHandler.Mkdir(path, unixBasePerms); err != nil {
		info, serr := h.osHandler.Stat(path)
		if serr == nil && info.IsDir() {
			return nil
		}

		return pathError(op, path, err)
	}

	return nil
}

// copyLink recreates a symbolic link at a destination. Anything else that is
// not a regular file or directory (devices, sockets, named pipes) is skipped.
func (h *Handler) copyLink(op string, src string, dst string) error {
	info, err := h.osHandler.Lstat(src)
	if err != nil {
		return pathError(op, src, err)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		slog.Warn("Failure copying special file (was skipped)", "path", src, "err", ErrNotRegularFile)

		return nil
	}

	target, err := h.osHandler.Readlink(src)
	if err != nil {
		return pathError(op, src, err)
	}

	if err := h.osHandler.Symlink(target, dst); err != nil {
		return pathError(op, dst, err)
	}

	return nil
}
