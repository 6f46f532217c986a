//go:build !unix

package filesystem

import (
	"os"
	"time"
)

type unixProvider interface{}

// permissions returns the platform default, as there are no Unix permission
// bits to report.
func (h *Handler) permissions(op string, path string, fallback os.FileMode) (os.FileMode, error) {
	if _, err := h.osHandler.Stat(path); err != nil {
		return 0, pathError(op, path, err)
	}

	return fallback, nil
}

// chmod does not change anything and returns the platform default.
func (h *Handler) chmod(op string, path string, _ os.FileMode) (os.FileMode, error) {
	info, err := h.osHandler.Stat(path)
	if err != nil {
		return 0, pathError(op, path, err)
	}

	if info.IsDir() {
		return DefaultDirMode, nil
	}

	return DefaultFileMode, nil
}

func (h *Handler) ownership(_ string, _ string) (uint32, uint32, error) {
	return 0, 0, nil
}

// hasEnoughFreeSpace cannot determine the free space and always succeeds.
func (h *Handler) hasEnoughFreeSpace(_ string, _ string, _ uint64) error {
	return nil
}

// setTimes sets the access and modification times of a path.
func (h *Handler) setTimes(op string, path string, atime time.Time, mtime time.Time) error {
	if err := h.osHandler.Chtimes(path, atime, mtime); err != nil {
		return pathError(op, path, err)
	}

	return nil
}

func isCrossDevice(_ error) bool {
	return false
}
