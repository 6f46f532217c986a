package gofs

import (
	"github.com/desertwitch/gofs/internal/filesystem"
	"github.com/desertwitch/gofs/internal/finder"
	"github.com/desertwitch/gofs/internal/macro"
	"github.com/desertwitch/gofs/internal/schema"
)

type (
	// File is a value handle for a file path.
	File = filesystem.File

	// Directory is a value handle for a directory path.
	Directory = filesystem.Directory

	// Finder accumulates the filters of a recursive search.
	Finder = finder.Finder

	// Sequence is the lazy, single-pass result of [Finder.Find].
	Sequence = finder.Sequence

	// Match is a single result of a [Sequence].
	Match = finder.Match

	// EntryType is the classification of a filesystem entry.
	EntryType = schema.EntryType

	// Metadata is the metadata of a filesystem entry.
	Metadata = schema.Metadata

	// PathError is a failure carrying the offending path.
	PathError = schema.PathError

	// MacroFunc is a named operation attached to a [Filesystem].
	MacroFunc = macro.Func[*Filesystem]
)

// Entry types, as classified without following links.
const (
	TypeNone  = schema.TypeNone
	TypeFile  = schema.TypeFile
	TypeDir   = schema.TypeDir
	TypeOther = schema.TypeOther
)

// Errors, matchable with [errors.Is].
//
//nolint:gochecknoglobals
var (
	ErrConfiguration = schema.ErrConfiguration
	ErrIO            = schema.ErrIO
	ErrNotFound      = schema.ErrNotFound

	ErrHashMismatch   = filesystem.ErrHashMismatch
	ErrNotEnoughSpace = filesystem.ErrNotEnoughSpace
	ErrNotDirectory   = filesystem.ErrNotDirectory
	ErrNotRegularFile = filesystem.ErrNotRegularFile
	ErrCopyIntoSelf   = filesystem.ErrCopyIntoSelf

	ErrMacroNotFound = macro.ErrMacroNotFound
	ErrMacroExists   = macro.ErrMacroExists
)
