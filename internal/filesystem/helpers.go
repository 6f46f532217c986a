package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/desertwitch/gofs/internal/schema"
)

// pathError classifies a failed operation into a [schema.PathError]. A
// non-existing path is of the [schema.ErrNotFound] kind, anything else of
// the [schema.ErrIO] kind.
func pathError(op string, path string, err error) error {
	if schema.IsNotExist(err) {
		return schema.NewPathError(schema.ErrNotFound, op, path, err)
	}

	return schema.NewPathError(schema.ErrIO, op, path, err)
}

// handleSize converts a int64 filesize to a uint64 filesize (with sizes < 0
// becoming 0).
func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}

// exists is a helper function checking if a path exists (following links).
func (h *Handler) exists(op string, path string) (bool, error) {
	if _, err := h.osHandler.Stat(path); err != nil {
		if schema.IsNotExist(err) {
			return false, nil
		}

		return false, pathError(op, path, err)
	}

	return true, nil
}

// entryType returns the [schema.EntryType] of a path (not following links).
func (h *Handler) entryType(op string, path string) (schema.EntryType, error) {
	info, err := h.osHandler.Lstat(path)
	if err != nil {
		if schema.IsNotExist(err) {
			return schema.TypeNone, nil
		}

		return schema.TypeNone, pathError(op, path, err)
	}

	return schema.EntryTypeOf(info.Mode()), nil
}

// isEmptyFolder is a helper function checking if a path is an empty folder.
func (h *Handler) isEmptyFolder(op string, path string) (bool, error) {
	entries, err := h.osHandler.ReadDir(path)
	if err != nil {
		return false, pathError(op, path, err)
	}

	return len(entries) == 0, nil
}

// ensureParent checks that the parent directory of a destination exists, as
// destination parents are never created implicitly.
func (h *Handler) ensureParent(op string, dst string) error {
	parent := filepath.Dir(dst)

	info, err := h.osHandler.Stat(parent)
	if err != nil {
		return pathError(op, parent, err)
	}

	if !info.IsDir() {
		return schema.NewPathError(schema.ErrIO, op, parent, ErrNotDirectory)
	}

	return nil
}

// isWithin checks if a path is located inside of (or equal to) a base path.
func isWithin(base string, path string) bool {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}
