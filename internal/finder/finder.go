// Package finder implements a fluent, lazily evaluated search over one or more
// directory trees. Filters are accumulated with chained calls on a [Finder]
// and evaluated with [Finder.Find] into a single-pass [Sequence] of matches,
// which reads directories only as the consumer advances through it.
package finder

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/desertwitch/gofs/internal/schema"
)

type osProvider interface {
	EvalSymlinks(path string) (string, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Stat(name string) (os.FileInfo, error)
}

type typeFilter int

const (
	anyType typeFilter = iota
	filesOnly
	dirsOnly
)

// filterSpec is the accumulated set of predicates of a [Finder].
type filterSpec struct {
	roots       []string
	types       typeFilter
	patterns    []string
	matchAll    bool
	followLinks bool
	strict      bool
}

func (s filterSpec) clone() filterSpec {
	s.roots = slices.Clone(s.roots)
	s.patterns = slices.Clone(s.patterns)

	return s
}

// Finder accumulates filters through chained configuration calls. None of
// the configuration calls can fail, any configuration problem is reported by
// [Finder.Find] at evaluation time. A [Finder] can be evaluated exactly once.
type Finder struct {
	osHandler osProvider
	filter    filterSpec
	evaluated bool
}

// NewFinder returns a pointer to a new [Finder] without any filters.
func NewFinder(osHandler osProvider) *Finder {
	return &Finder{
		osHandler: osHandler,
	}
}

// In adds traversal roots. Repeated calls union the trees of all roots.
func (f *Finder) In(roots ...string) *Finder {
	f.filter.roots = append(f.filter.roots, roots...)

	return f
}

// Files restricts the results to regular files.
func (f *Finder) Files() *Finder {
	f.filter.types = filesOnly

	return f
}

// Directories restricts the results to directories.
func (f *Finder) Directories() *Finder {
	f.filter.types = dirsOnly

	return f
}

// Name adds glob patterns (as understood by [filepath.Match]) the basename of
// a result must satisfy. By default a result needs to match any one of the
// patterns, see [Finder.MatchAllNames] for requiring all of them.
func (f *Finder) Name(patterns ...string) *Finder {
	f.filter.patterns = append(f.filter.patterns, patterns...)

	return f
}

// MatchAllNames requires a result to match all of the patterns given with
// [Finder.Name], instead of any one of them.
func (f *Finder) MatchAllNames() *Finder {
	f.filter.matchAll = true

	return f
}

// FollowLinks makes the traversal descend into symbolic links pointing to
// directories. Each directory is entered at most once per evaluation (by its
// resolved path), so that link cycles terminate.
func (f *Finder) FollowLinks() *Finder {
	f.filter.followLinks = true

	return f
}

// Strict makes the [Sequence] fail with an [schema.ErrIO] kind error on the
// first directory that cannot be read, instead of skipping it.
func (f *Finder) Strict() *Finder {
	f.filter.strict = true

	return f
}

// Find evaluates the [Finder] into a [Sequence]. The accumulated filters are
// frozen at this point, later configuration calls on the [Finder] have no
// effect on the returned [Sequence]. All errors are of the
// [schema.ErrConfiguration] kind (or [schema.ErrIO] if a root could not be
// inspected for a reason other than not existing). A failed evaluation does
// not count, so the [Finder] can be corrected and evaluated again.
func (f *Finder) Find() (*Sequence, error) {
	if f.evaluated {
		return nil, schema.NewPathError(schema.ErrConfiguration, "find", "", ErrAlreadyEvaluated)
	}

	filter := f.filter.clone()

	if len(filter.roots) == 0 {
		return nil, schema.NewPathError(schema.ErrConfiguration, "find", "", ErrNoRoots)
	}

	for _, pattern := range filter.patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, schema.NewPathError(schema.ErrConfiguration, "find", pattern, fmt.Errorf("%w: %w", ErrBadPattern, err))
		}
	}

	roots, err := f.establishRoots(filter.roots)
	if err != nil {
		return nil, err
	}

	f.evaluated = true

	return newSequence(f.osHandler, filter, roots), nil
}

// establishRoots checks the existence of all roots, removing those already
// covered by the traversal of another root.
func (f *Finder) establishRoots(paths []string) ([]rootEntry, error) {
	roots := make([]rootEntry, 0, len(paths))
	known := make(map[string]struct{}, len(paths))

	for _, path := range paths {
		path = filepath.Clean(path)

		info, err := f.osHandler.Stat(path)
		if err != nil {
			if schema.IsNotExist(err) {
				return nil, schema.NewPathError(schema.ErrConfiguration, "find", path, fmt.Errorf("%w: %w", ErrRootNotFound, err))
			}

			return nil, schema.NewPathError(schema.ErrIO, "find", path, err)
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, schema.NewPathError(schema.ErrIO, "find", path, err)
		}

		if _, exists := known[abs]; exists {
			continue
		}
		known[abs] = struct{}{}

		roots = append(roots, rootEntry{
			path: path,
			abs:  abs,
			typ:  schema.EntryTypeOf(info.Mode()),
		})
	}

	if len(roots) < 2 { //nolint:mnd
		return roots, nil
	}

	return slices.DeleteFunc(slices.Clone(roots), func(inner rootEntry) bool {
		return slices.ContainsFunc(roots, func(outer rootEntry) bool {
			return f.reaches(outer, inner)
		})
	}), nil
}

// reaches checks if the traversal of an outer root arrives at an inner root
// through plain directories. A directory is reached if neither it nor any of
// its parents below the outer root is a symbolic link, anything else is
// reached already if its parent directory is.
func (f *Finder) reaches(outer rootEntry, inner rootEntry) bool {
	if outer.typ != schema.TypeDir || outer.abs == inner.abs {
		return false
	}

	rel, err := filepath.Rel(outer.abs, inner.abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}

	target := inner.abs
	if inner.typ != schema.TypeDir {
		target = filepath.Dir(target)
		rel = filepath.Dir(rel)
	}

	resolvedOuter, err := f.osHandler.EvalSymlinks(outer.abs)
	if err != nil {
		return false
	}

	resolvedTarget, err := f.osHandler.EvalSymlinks(target)
	if err != nil {
		return false
	}

	return resolvedTarget == filepath.Join(resolvedOuter, rel)
}
