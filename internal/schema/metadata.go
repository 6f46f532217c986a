package schema

import "time"

// Metadata holds the metadata of a filesystem entry as returned by the
// operating system (without following symbolic links).
type Metadata struct {
	Perms      uint32
	UID        uint32
	GID        uint32
	AccessedAt time.Time
	ModifiedAt time.Time
	Size       uint64
	Type       EntryType
	IsSymlink  bool
	SymlinkTo  string
}
