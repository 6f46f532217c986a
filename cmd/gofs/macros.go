package main

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/desertwitch/gofs"
)

var errMacroArgs = errors.New("invalid macro arguments")

func stringArgs(want int, args []any) ([]string, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%w: expected %d, got %d", errMacroArgs, want, len(args))
	}

	strs := make([]string, 0, len(args))
	for _, arg := range args {
		s, ok := arg.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %v is not a string", errMacroArgs, arg)
		}
		strs = append(strs, s)
	}

	return strs, nil
}

// lineCountMacro counts the lines of a file.
func lineCountMacro(fsys *gofs.Filesystem, args ...any) (any, error) {
	strs, err := stringArgs(1, args)
	if err != nil {
		return nil, err
	}

	data, err := fsys.Get(strs[0])
	if err != nil {
		return nil, err
	}

	lines := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		lines++
	}

	return lines, nil
}

// duplicatesMacro groups the files below a directory by content hash,
// returning only the groups with more than one file.
func duplicatesMacro(fsys *gofs.Filesystem, args ...any) (any, error) {
	strs, err := stringArgs(1, args)
	if err != nil {
		return nil, err
	}

	seq, err := fsys.Find().In(strs[0]).Files().Find()
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]string)

	for m := range seq.All() {
		sum, err := fsys.Hash(m.Path)
		if err != nil {
			return nil, err
		}
		groups[sum] = append(groups[sum], m.Path)
	}

	if err := seq.Err(); err != nil {
		return nil, err
	}

	for sum, paths := range groups {
		if len(paths) < 2 { //nolint:mnd
			delete(groups, sum)
		}
	}

	return groups, nil
}

// emptyMacro lists the zero-byte files and the directories without any
// entries below a directory.
func emptyMacro(fsys *gofs.Filesystem, args ...any) (any, error) {
	strs, err := stringArgs(1, args)
	if err != nil {
		return nil, err
	}

	seq, err := fsys.Find().In(strs[0]).Find()
	if err != nil {
		return nil, err
	}

	var empty []string

	for m := range seq.All() {
		var isEmpty bool

		switch m.Type {
		case gofs.TypeFile:
			var size uint64
			size, err = fsys.File(m.Path).Size()
			isEmpty = size == 0
		case gofs.TypeDir:
			isEmpty, err = fsys.Directory(m.Path).IsEmpty()
		case gofs.TypeNone, gofs.TypeOther:
			continue
		}
		if err != nil {
			return nil, err
		}

		if isEmpty {
			empty = append(empty, m.Path)
		}
	}

	if err := seq.Err(); err != nil {
		return nil, err
	}

	slices.Sort(empty)

	return empty, nil
}
