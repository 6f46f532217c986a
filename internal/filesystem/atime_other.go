//go:build !linux

package filesystem

import "time"

// accessTime returns the last modification time of a path (following links),
// as the access time is not portably available outside of Linux.
func (h *Handler) accessTime(op string, path string) (time.Time, error) {
	info, err := h.osHandler.Stat(path)
	if err != nil {
		return time.Time{}, pathError(op, path, err)
	}

	return info.ModTime(), nil
}
