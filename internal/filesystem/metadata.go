package filesystem

import (
	"os"

	"github.com/desertwitch/gofs/internal/schema"
)

// metadata collects the [schema.Metadata] of a path (not following links).
func (h *Handler) metadata(op string, path string) (*schema.Metadata, error) {
	info, err := h.osHandler.Lstat(path)
	if err != nil {
		return nil, pathError(op, path, err)
	}

	uid, gid, err := h.ownership(op, path)
	if err != nil {
		return nil, err
	}

	meta := &schema.Metadata{
		Perms:      uint32(info.Mode().Perm()),
		UID:        uid,
		GID:        gid,
		ModifiedAt: info.ModTime(),
		AccessedAt: info.ModTime(),
		Size:       handleSize(info.Size()),
		Type:       schema.EntryTypeOf(info.Mode()),
	}

	if info.Mode()&os.ModeSymlink != 0 {
		meta.IsSymlink = true

		target, err := h.osHandler.Readlink(path)
		if err != nil {
			return nil, pathError(op, path, err)
		}
		meta.SymlinkTo = target

		return meta, nil
	}

	if atime, err := h.accessTime(op, path); err == nil {
		meta.AccessedAt = atime
	}

	return meta, nil
}
