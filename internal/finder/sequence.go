package finder

import (
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/desertwitch/gofs/internal/schema"
)

// Match is a single result of a [Sequence]. The type is known from the
// traversal, so no further stat is needed to decide how to handle it.
type Match struct {
	Path string
	Name string
	Type schema.EntryType
}

// IsDir returns true if the [Match] is a directory.
func (m Match) IsDir() bool {
	return m.Type == schema.TypeDir
}

type rootEntry struct {
	path string
	abs  string
	typ  schema.EntryType
}

// frame is a directory of the traversal stack, its listing is read only once
// the traversal reaches it.
type frame struct {
	dir     string
	entries []os.DirEntry
	loaded  bool
	index   int
}

// Sequence is the lazy, forward-only and non-restartable result of
// [Finder.Find]. Matches are produced as the directories are read, so the
// results reflect the state of the filesystem at the moment each directory
// is listed. A consumer that stops advancing causes no further reads.
type Sequence struct {
	osHandler osProvider
	filter    filterSpec
	pending   []rootEntry
	stack     []*frame
	visited   map[string]struct{}
	current   Match
	err       error
	done      bool
}

func newSequence(osHandler osProvider, filter filterSpec, roots []rootEntry) *Sequence {
	seq := &Sequence{
		osHandler: osHandler,
		filter:    filter,
		pending:   roots,
	}

	if filter.followLinks {
		seq.visited = make(map[string]struct{})
	}

	return seq
}

// Next advances the [Sequence] to the next [Match], which is then available
// through [Sequence.Match]. It returns false when the [Sequence] is exhausted
// or has failed, the latter is reported by [Sequence.Err].
func (s *Sequence) Next() bool {
	if s.done {
		return false
	}

	for {
		if len(s.stack) == 0 {
			if len(s.pending) == 0 {
				s.done = true

				return false
			}

			root := s.pending[0]
			s.pending = s.pending[1:]

			if root.typ == schema.TypeDir {
				if s.shouldDescend(root.path) {
					s.push(root.path)
				}

				continue
			}

			if s.accept(root.path, filepath.Base(root.path), root.typ) {
				return true
			}

			continue
		}

		top := s.stack[len(s.stack)-1]

		if !top.loaded {
			top.loaded = true

			entries, err := s.osHandler.ReadDir(top.dir)
			if err != nil {
				if s.filter.strict {
					s.err = schema.NewPathError(schema.ErrIO, "find", top.dir, fmt.Errorf("%w: %w", ErrUnreadableDir, err))
					s.done = true

					return false
				}

				slog.Warn("Failure reading directory during traversal (was skipped)",
					"path", top.dir,
					"err", err,
				)
				s.pop()

				continue
			}
			top.entries = entries
		}

		if top.index >= len(top.entries) {
			s.pop()

			continue
		}

		entry := top.entries[top.index]
		top.index++

		path := filepath.Join(top.dir, entry.Name())
		typ := s.classify(path, entry)

		if typ == schema.TypeDir && s.shouldDescend(path) {
			s.push(path)
		}

		if s.accept(path, entry.Name(), typ) {
			return true
		}
	}
}

// Match returns the [Match] the last call of [Sequence.Next] advanced to.
func (s *Sequence) Match() Match {
	return s.current
}

// Err returns the error that terminated the [Sequence], if any.
func (s *Sequence) Err() error {
	return s.err
}

// All returns an iterator over the remaining matches. As the [Sequence] is
// forward-only, ranging over it again continues where the last loop stopped
// and yields nothing once the [Sequence] is exhausted.
func (s *Sequence) All() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		for s.Next() {
			if !yield(s.current) {
				return
			}
		}
	}
}

// Collect materializes all remaining matches of the [Sequence].
func (s *Sequence) Collect() ([]Match, error) {
	matches := []Match{}

	for s.Next() {
		matches = append(matches, s.current)
	}

	if s.err != nil {
		return nil, s.err
	}

	return matches, nil
}

func (s *Sequence) push(dir string) {
	s.stack = append(s.stack, &frame{dir: dir})
}

func (s *Sequence) pop() {
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
}

// classify returns the [schema.EntryType] of a directory entry. Symbolic
// links are only resolved when links are followed, a dangling link stays
// [schema.TypeOther].
func (s *Sequence) classify(path string, entry os.DirEntry) schema.EntryType {
	typ := schema.EntryTypeOf(entry.Type())

	if s.filter.followLinks && entry.Type()&fs.ModeSymlink != 0 {
		if info, err := s.osHandler.Stat(path); err == nil {
			typ = schema.EntryTypeOf(info.Mode())
		}
	}

	return typ
}

// shouldDescend decides if a directory is to be traversed. Without following
// links every directory is traversed, otherwise a directory is traversed
// only on the first encounter of its resolved path.
func (s *Sequence) shouldDescend(dir string) bool {
	if !s.filter.followLinks {
		return true
	}

	resolved, err := s.osHandler.EvalSymlinks(dir)
	if err != nil {
		slog.Warn("Failure resolving directory during traversal (was skipped)",
			"path", dir,
			"err", err,
		)

		return false
	}

	if _, seen := s.visited[resolved]; seen {
		return false
	}
	s.visited[resolved] = struct{}{}

	return true
}

// accept applies the type filter and then the name filter to an entry,
// storing it as the current [Match] if it passes.
func (s *Sequence) accept(path string, name string, typ schema.EntryType) bool {
	switch s.filter.types {
	case filesOnly:
		if typ != schema.TypeFile {
			return false
		}
	case dirsOnly:
		if typ != schema.TypeDir {
			return false
		}
	case anyType:
	}

	if !matchesName(name, s.filter.patterns, s.filter.matchAll) {
		return false
	}

	s.current = Match{
		Path: path,
		Name: name,
		Type: typ,
	}

	return true
}

// matchesName checks a basename against the patterns. Patterns were
// validated in [Finder.Find], so match errors cannot occur here.
func matchesName(name string, patterns []string, matchAll bool) bool {
	if len(patterns) == 0 {
		return true
	}

	for _, pattern := range patterns {
		ok, _ := filepath.Match(pattern, name)

		if ok && !matchAll {
			return true
		}

		if !ok && matchAll {
			return false
		}
	}

	return matchAll
}
