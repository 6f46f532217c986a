package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

var (
	// ErrConfiguration is the kind of errors that occur when an operation was
	// configured in a way it cannot be evaluated (e.g. a finder without roots).
	ErrConfiguration = errors.New("configuration error")

	// ErrIO is the kind of errors that occur when an underlying system call
	// failed for a reason other than being already in the desired state.
	ErrIO = errors.New("i/o error")

	// ErrNotFound is the kind of errors that occur when an operation requires
	// a path to exist, but it does not.
	ErrNotFound = errors.New("path not found")
)

// PathError is a typed failure carrying the offending path. Both the error
// kind ([ErrConfiguration], [ErrIO], [ErrNotFound]) and the underlying cause
// can be matched with [errors.Is] and [errors.As].
type PathError struct {
	Kind error
	Op   string
	Path string
	Err  error
}

// NewPathError returns a pointer to a new [PathError].
func NewPathError(kind error, op string, path string, err error) *PathError {
	return &PathError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("(%s) %v: %s", e.Op, e.Kind, e.Path)
	}

	return fmt.Sprintf("(%s) %v: %s: %v", e.Op, e.Kind, e.Path, e.Err)
}

// Unwrap returns both the error kind and the cause (if any).
func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// IsNotExist reports whether an error means that a path does not exist. A
// path below a regular file (ENOTDIR) cannot exist and counts as well.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
