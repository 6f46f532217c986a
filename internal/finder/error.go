package finder

import "errors"

var (
	// ErrNoRoots is an error that occurs when a [Finder] is evaluated without
	// any root having been configured with [Finder.In].
	ErrNoRoots = errors.New("no roots configured")

	// ErrRootNotFound is an error that occurs when a configured root does not
	// exist at the time the [Finder] is evaluated.
	ErrRootNotFound = errors.New("root does not exist")

	// ErrAlreadyEvaluated is an error that occurs when [Finder.Find] is called
	// on a [Finder] that was already evaluated. A fresh [Finder] is needed for
	// another search.
	ErrAlreadyEvaluated = errors.New("finder was already evaluated")

	// ErrBadPattern is an error that occurs when a name pattern given to
	// [Finder.Name] is malformed.
	ErrBadPattern = errors.New("malformed name pattern")

	// ErrUnreadableDir is an error that occurs in strict mode when a directory
	// below a root cannot be read during traversal.
	ErrUnreadableDir = errors.New("directory could not be read")
)
