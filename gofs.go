// Package gofs is a filesystem convenience layer. It exposes file and
// directory operations through small value handles ([File], [Directory]),
// a lazily evaluated recursive search ([Finder]) and a set of pass-through
// operations on plain paths. Callers can attach their own named operations
// (macros) when constructing a [Filesystem].
package gofs

import (
	"fmt"
	"os"

	"github.com/desertwitch/gofs/internal/filesystem"
	"github.com/desertwitch/gofs/internal/macro"
	"github.com/desertwitch/gofs/internal/pathing"
	"github.com/desertwitch/gofs/internal/schema"
)

//nolint:gochecknoglobals
var builtins = []string{
	"File", "Directory", "Find",
	"Put", "Get", "Append", "Prepend",
	"Exists", "Delete", "IsFile", "IsDirectory",
	"Hash", "Copy", "Move", "Chmod", "Size",
	"IsAbsolute", "IsWindowsPath", "IsStream",
	"Call", "HasMacro", "Macros",
}

type options struct {
	fileMode os.FileMode
	dirMode  os.FileMode
	macros   []namedMacro
}

type namedMacro struct {
	name string
	fn   MacroFunc
}

// Option configures a [Filesystem] at construction.
type Option func(*options)

// WithFileMode sets the mode new files are created with.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode.Perm()
	}
}

// WithDirMode sets the mode new directories are created with.
func WithDirMode(mode os.FileMode) Option {
	return func(o *options) {
		o.dirMode = mode.Perm()
	}
}

// WithMacro registers a named operation, callable with [Filesystem.Call].
// The name must not collide with a built-in operation (case-insensitively)
// or another macro.
func WithMacro(name string, fn MacroFunc) Option {
	return func(o *options) {
		o.macros = append(o.macros, namedMacro{name: name, fn: fn})
	}
}

// Filesystem is the entry point for all operations. It holds no mutable
// state once constructed and is safe for concurrent use.
type Filesystem struct {
	handler *filesystem.Handler
	macros  *macro.Registry[*Filesystem]
}

// New returns a pointer to a new [Filesystem].
func New(opts ...Option) (*Filesystem, error) {
	o := &options{
		fileMode: filesystem.DefaultFileMode,
		dirMode:  filesystem.DefaultDirMode,
	}

	for _, opt := range opts {
		opt(o)
	}

	registry := macro.NewRegistry[*Filesystem](builtins...)

	for _, m := range o.macros {
		if err := registry.Register(m.name, m.fn); err != nil {
			return nil, fmt.Errorf("(gofs) %w: %w", ErrConfiguration, err)
		}
	}
	registry.Freeze()

	return &Filesystem{
		handler: filesystem.NewHandler(&schema.OS{}, &schema.Unix{}, o.fileMode, o.dirMode),
		macros:  registry,
	}, nil
}

// File returns a [File] handle for a path.
func (f *Filesystem) File(path string) File {
	return f.handler.File(path)
}

// Directory returns a [Directory] handle for a path.
func (f *Filesystem) Directory(path string) Directory {
	return f.handler.Directory(path)
}

// Find returns a new [Finder] without any roots or filters.
func (f *Filesystem) Find() *Finder {
	return f.handler.Finder()
}

// IsAbsolute returns true if a path is absolute on any supported platform,
// or a stream URI.
func (f *Filesystem) IsAbsolute(path string) bool {
	return pathing.IsAbsolute(path)
}

// IsWindowsPath returns true if a path is in Windows notation.
func (f *Filesystem) IsWindowsPath(path string) bool {
	return pathing.IsWindowsPath(path)
}

// IsStream returns true if a path is a stream URI (scheme://...).
func (f *Filesystem) IsStream(path string) bool {
	return pathing.IsStream(path)
}

// Call calls the macro registered under a name.
func (f *Filesystem) Call(name string, args ...any) (any, error) {
	return f.macros.Call(f, name, args...)
}

// HasMacro returns true if a macro is registered under a name.
func (f *Filesystem) HasMacro(name string) bool {
	return f.macros.Has(name)
}

// Macros returns the sorted names of all registered macros.
func (f *Filesystem) Macros() []string {
	return f.macros.Names()
}
