package filesystem

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/desertwitch/gofs/internal/pathing"
	"github.com/desertwitch/gofs/internal/schema"
)

const (
	sniffFallback = "application/octet-stream"
	sniffText     = "text/plain"
)

// File is a value handle for a file path. It is never mutated, operations
// like [File.Move] leave the handle pointing at the old path.
type File struct {
	path    string
	handler *Handler
}

// Path returns the path of the [File].
func (f File) Path() string {
	return f.path
}

// Exists returns true if the path exists (following links).
func (f File) Exists() (bool, error) {
	return f.handler.exists("exists", f.path)
}

// Type returns the [schema.EntryType] of the path (not following links),
// [schema.TypeNone] if it does not exist.
func (f File) Type() (schema.EntryType, error) {
	return f.handler.entryType("type", f.path)
}

// IsFile returns true if the path is a regular file (following links).
func (f File) IsFile() bool {
	info, err := f.handler.osHandler.Stat(f.path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// Get returns the content of the file.
func (f File) Get() ([]byte, error) {
	return f.handler.readFile("get", f.path)
}

// Put creates or truncates the file and writes data to it, returning the
// amount of bytes written.
func (f File) Put(data []byte) (int, error) {
	return f.handler.writeFile("put", f.path, data, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// Append writes data to the end of the file, creating it if needed. It
// returns the amount of bytes appended.
func (f File) Append(data []byte) (int, error) {
	return f.handler.writeFile("append", f.path, data, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

// Prepend writes data to the start of the file, creating it if needed. It
// returns the new total length of the file.
func (f File) Prepend(data []byte) (int, error) {
	existing, err := f.handler.readFile("prepend", f.path)
	if err != nil && !errors.Is(err, schema.ErrNotFound) {
		return 0, err
	}

	content := make([]byte, 0, len(data)+len(existing))
	content = append(content, data...)
	content = append(content, existing...)

	return f.handler.writeFile("prepend", f.path, content, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// Delete removes the file. A file that does not exist is already deleted,
// which counts as success.
func (f File) Delete() (bool, error) {
	if err := f.handler.osHandler.Remove(f.path); err != nil {
		if schema.IsNotExist(err) {
			return true, nil
		}

		return false, pathError("delete", f.path, err)
	}

	return true, nil
}

// Copy copies the file to a destination, whose parent directory must exist.
// The copy is verified against the source before it replaces the
// destination.
func (f File) Copy(dest string) (bool, error) {
	if err := f.handler.copyFile("copy", f.path, dest); err != nil {
		return false, err
	}

	return true, nil
}

// Move renames the file to a destination, whose parent directory must exist.
// Across filesystems it falls back to a verified copy and removal of the
// source.
func (f File) Move(dest string) (bool, error) {
	if _, err := f.handler.osHandler.Lstat(f.path); err != nil {
		return false, pathError("move", f.path, err)
	}

	err := f.handler.moveEntry("move", f.path, dest, func() error {
		return f.handler.copyFile("move", f.path, dest)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// Permissions returns the permission bits of the file.
func (f File) Permissions() (os.FileMode, error) {
	return f.handler.permissions("permissions", f.path, DefaultFileMode)
}

// Chmod sets the permission bits of the file, returning the previous ones.
func (f File) Chmod(mode os.FileMode) (os.FileMode, error) {
	return f.handler.chmod("chmod", f.path, mode)
}

// Hash returns the hexadecimal BLAKE3-256 sum of the file's content.
func (f File) Hash() (string, error) {
	return f.handler.hashFile("hash", f.path)
}

// Size returns the size of the file in bytes.
func (f File) Size() (uint64, error) {
	info, err := f.handler.osHandler.Stat(f.path)
	if err != nil {
		return 0, pathError("size", f.path, err)
	}

	return handleSize(info.Size()), nil
}

// LastModified returns the modification time of the file.
func (f File) LastModified() (time.Time, error) {
	info, err := f.handler.osHandler.Stat(f.path)
	if err != nil {
		return time.Time{}, pathError("lastmodified", f.path, err)
	}

	return info.ModTime(), nil
}

// LastAccessed returns the access time of the file.
func (f File) LastAccessed() (time.Time, error) {
	return f.handler.accessTime("lastaccessed", f.path)
}

// Touch sets the access and modification times of the file to the current
// time, creating an empty file if it does not exist.
func (f File) Touch() error {
	exists, err := f.handler.exists("touch", f.path)
	if err != nil {
		return err
	}

	if !exists {
		_, err := f.handler.writeFile("touch", f.path, nil, os.O_WRONLY|os.O_CREATE)

		return err
	}

	now := time.Now()

	return f.handler.setTimes("touch", f.path, now, now)
}

// MimeType returns the media type of the file, detected from its first 512
// bytes. If the content is only recognized as generic text or binary data,
// the more specific type registered for the extension is preferred.
func (f File) MimeType() (string, error) {
	head, err := f.handler.readHead("mimetype", f.path, sniffLength)
	if err != nil {
		return "", err
	}

	detected := http.DetectContentType(head)
	if mediaType, _, _ := mime.ParseMediaType(detected); mediaType != sniffFallback && mediaType != sniffText {
		return detected, nil
	}

	if byExt := mime.TypeByExtension(filepath.Ext(f.path)); byExt != "" {
		return byExt, nil
	}

	return detected, nil
}

// Metadata returns the [schema.Metadata] of the file.
func (f File) Metadata() (*schema.Metadata, error) {
	return f.handler.metadata("metadata", f.path)
}

// Basename returns the last element of the path.
func (f File) Basename() string {
	return pathing.Basename(f.path)
}

// Extension returns the extension of the path, without the leading dot.
func (f File) Extension() string {
	return pathing.Extension(f.path)
}

// Filename returns the last element of the path without its extension.
func (f File) Filename() string {
	return pathing.Filename(f.path)
}
