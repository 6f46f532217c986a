//go:build linux

package filesystem

import (
	"time"

	"golang.org/x/sys/unix"
)

// accessTime returns the last access time of a path (following links).
func (h *Handler) accessTime(op string, path string) (time.Time, error) {
	var st unix.Stat_t

	if err := h.unixHandler.Stat(path, &st); err != nil {
		return time.Time{}, pathError(op, path, err)
	}

	return time.Unix(st.Atim.Unix()), nil
}
