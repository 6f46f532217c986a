//go:build unix

package filesystem

import (
	"errors"
	"os"
	"time"

	"github.com/desertwitch/gofs/internal/schema"
	"golang.org/x/sys/unix"
)

type unixProvider interface {
	Chmod(path string, mode uint32) error
	Lstat(path string, stat *unix.Stat_t) error
	Stat(path string, stat *unix.Stat_t) error
	Statfs(path string, buf *unix.Statfs_t) error
	UtimesNano(path string, times []unix.Timespec) error
}

// permissions returns the permission bits of a path (following links).
func (h *Handler) permissions(op string, path string, _ os.FileMode) (os.FileMode, error) {
	var st unix.Stat_t

	if err := h.unixHandler.Stat(path, &st); err != nil {
		return 0, pathError(op, path, err)
	}

	return os.FileMode(st.Mode & unixBasePerms), nil
}

// chmod sets the permission bits of a path, returning the previous ones.
func (h *Handler) chmod(op string, path string, mode os.FileMode) (os.FileMode, error) {
	prev, err := h.permissions(op, path, 0)
	if err != nil {
		return 0, err
	}

	if err := h.unixHandler.Chmod(path, uint32(mode.Perm())); err != nil {
		return 0, pathError(op, path, err)
	}

	return prev, nil
}

// ownership returns the owning user and group of a path (not following links).
func (h *Handler) ownership(op string, path string) (uint32, uint32, error) {
	var st unix.Stat_t

	if err := h.unixHandler.Lstat(path, &st); err != nil {
		return 0, 0, pathError(op, path, err)
	}

	return st.Uid, st.Gid, nil
}

// hasEnoughFreeSpace checks if the filesystem containing a path has at least
// the given amount of bytes available to unprivileged users.
func (h *Handler) hasEnoughFreeSpace(op string, path string, needed uint64) error {
	var stat unix.Statfs_t

	if err := h.unixHandler.Statfs(path, &stat); err != nil {
		return pathError(op, path, err)
	}

	//nolint:gosec
	free := uint64(stat.Bavail) * uint64(stat.Bsize)

	if free < needed {
		return schema.NewPathError(schema.ErrIO, op, path, ErrNotEnoughSpace)
	}

	return nil
}

// setTimes sets the access and modification times of a path.
func (h *Handler) setTimes(op string, path string, atime time.Time, mtime time.Time) error {
	times := []unix.Timespec{
		unix.NsecToTimespec(atime.UnixNano()),
		unix.NsecToTimespec(mtime.UnixNano()),
	}

	if err := h.unixHandler.UtimesNano(path, times); err != nil {
		return pathError(op, path, err)
	}

	return nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
