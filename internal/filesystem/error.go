package filesystem

import "errors"

var (
	// ErrNotRegularFile is an error that occurs when a file operation is
	// attempted on something that is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrNotDirectory is an error that occurs when a directory operation is
	// attempted on something that is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrNotEnoughSpace is an error that occurs when there is not enough free
	// space to take the to be copied file on the target filesystem.
	ErrNotEnoughSpace = errors.New("not enough free space on destination")

	// ErrHashMismatch is an error that occurs when there is a source/destination
	// hash mismatch, this usually means that there are underlying
	// transfer/hardware issues.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrCopyIntoSelf is an error that occurs when a directory is to be copied
	// or moved into itself.
	ErrCopyIntoSelf = errors.New("destination is inside of source")
)
