package filesystem

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/desertwitch/gofs/internal/schema"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

const (
	tmpSuffix   = ".gofs-"
	sniffLength = 512
)

// writeFile opens a file with the given flags and writes data to it,
// returning the amount of bytes written.
func (h *Handler) writeFile(op string, path string, data []byte, flag int) (int, error) {
	file, err := h.osHandler.OpenFile(path, flag, h.fileMode)
	if err != nil {
		return 0, pathError(op, path, err)
	}
	defer file.Close()

	n, err := file.Write(data)
	if err != nil {
		return n, pathError(op, path, err)
	}
	if n < len(data) {
		return n, pathError(op, path, io.ErrShortWrite)
	}

	if err := file.Close(); err != nil {
		return n, pathError(op, path, err)
	}

	return n, nil
}

// readFile returns the content of a file.
func (h *Handler) readFile(op string, path string) ([]byte, error) {
	file, err := h.osHandler.Open(path)
	if err != nil {
		return nil, pathError(op, path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, pathError(op, path, err)
	}

	return data, nil
}

// readHead returns up to the first n bytes of a file.
func (h *Handler) readHead(op string, path string, n int) ([]byte, error) {
	file, err := h.osHandler.Open(path)
	if err != nil {
		return nil, pathError(op, path, err)
	}
	defer file.Close()

	buf := make([]byte, n)

	read, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, pathError(op, path, err)
	}

	return buf[:read], nil
}

// hashFile returns the hexadecimal BLAKE3-256 sum of a file's content.
func (h *Handler) hashFile(op string, path string) (string, error) {
	file, err := h.osHandler.Open(path)
	if err != nil {
		return "", pathError(op, path, err)
	}
	defer file.Close()

	hasher := blake3.New()

	if _, err := io.Copy(hasher, file); err != nil {
		return "", pathError(op, path, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// copyFile copies a regular file to a destination. The content is written
// into a temporary file next to the destination, which is synced and read
// back for comparison with the source hash. Only a verified temporary file
// is renamed over the destination, carrying over the source permissions and
// timestamps.
func (h *Handler) copyFile(op string, src string, dst string) (retErr error) {
	srcInfo, err := h.osHandler.Stat(src)
	if err != nil {
		return pathError(op, src, err)
	}
	if !srcInfo.Mode().IsRegular() {
		return schema.NewPathError(schema.ErrIO, op, src, ErrNotRegularFile)
	}

	if err := h.ensureParent(op, dst); err != nil {
		return err
	}

	if err := h.hasEnoughFreeSpace(op, filepath.Dir(dst), handleSize(srcInfo.Size())); err != nil {
		return err
	}

	srcAtime, err := h.accessTime(op, src)
	if err != nil {
		srcAtime = srcInfo.ModTime()
	}

	srcFile, err := h.osHandler.Open(src)
	if err != nil {
		return pathError(op, src, err)
	}
	defer srcFile.Close()

	tmpPath := dst + tmpSuffix + uuid.NewString()
	defer func() {
		if retErr != nil {
			if err := h.osHandler.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				slog.Warn("Failure removing temporary file (was skipped)", "path", tmpPath, "err", err)
			}
		}
	}()

	dstFile, err := h.osHandler.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return pathError(op, tmpPath, err)
	}
	defer dstFile.Close()

	srcHasher := blake3.New()

	if _, err := io.Copy(dstFile, io.TeeReader(srcFile, srcHasher)); err != nil {
		return pathError(op, tmpPath, err)
	}

	if err := dstFile.Sync(); err != nil {
		return pathError(op, tmpPath, err)
	}

	if err := dstFile.Close(); err != nil {
		return pathError(op, tmpPath, err)
	}

	srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))

	dstChecksum, err := h.hashFile(op, tmpPath)
	if err != nil {
		return err
	}

	if srcChecksum != dstChecksum {
		return schema.NewPathError(schema.ErrIO, op, dst,
			fmt.Errorf("%w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum))
	}

	if _, err := h.chmod(op, tmpPath, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	if err := h.osHandler.Rename(tmpPath, dst); err != nil {
		return pathError(op, dst, err)
	}

	if err := h.setTimes(op, dst, srcAtime, srcInfo.ModTime()); err != nil {
		slog.Warn("Failure carrying over timestamps (was skipped)", "path", dst, "err", err)
	}

	return nil
}

// moveEntry renames a path, falling back to a verified copy and removal of
// the source when the rename crosses a filesystem boundary.
func (h *Handler) moveEntry(op string, src string, dst string, copyFn func() error) error {
	if err := h.ensureParent(op, dst); err != nil {
		return err
	}

	err := h.osHandler.Rename(src, dst)
	if err == nil {
		return nil
	}

	if !isCrossDevice(err) {
		return pathError(op, src, err)
	}

	slog.Debug("Rename crosses filesystems, falling back to copy", "src", src, "dst", dst)

	if err := copyFn(); err != nil {
		return err
	}

	if err := h.osHandler.RemoveAll(src); err != nil {
		return pathError(op, src, err)
	}

	return nil
}
