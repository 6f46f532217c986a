package schema

import "io/fs"

// EntryType is the classification of a filesystem entry.
type EntryType int

const (
	// TypeNone is the type of a path that does not exist.
	TypeNone EntryType = iota

	// TypeFile is the type of a regular file.
	TypeFile

	// TypeDir is the type of a directory.
	TypeDir

	// TypeOther is the type of anything that is neither a regular file nor a
	// directory (symbolic links, devices, sockets, named pipes).
	TypeOther
)

// String returns the textual representation of an [EntryType]. A
// non-existing entry is represented by the empty string.
func (t EntryType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDir:
		return "dir"
	case TypeOther:
		return "other"
	case TypeNone:
		return ""
	default:
		return ""
	}
}

// EntryTypeOf classifies a [fs.FileMode] into an [EntryType].
func EntryTypeOf(mode fs.FileMode) EntryType {
	switch {
	case mode.IsRegular():
		return TypeFile
	case mode.IsDir():
		return TypeDir
	default:
		return TypeOther
	}
}
