// Package pathing classifies and decomposes path strings independent of the
// operating system the program runs on. Both slash and backslash separators
// are understood, as are drive letters and stream URIs. All functions are
// pure and total: invalid input yields a zero value, never an error.
package pathing

import (
	"path"
	"strings"
)

const (
	schemeSeparator = "://"
	uncPrefix       = `\\`
)

// IsAbsolute reports whether a path is absolute on any of the supported
// conventions: a leading separator, a drive letter followed by a separator
// ("c:/", "C:\") or a stream URI ("http://").
func IsAbsolute(p string) bool {
	if p == "" {
		return false
	}

	if isSeparator(p[0]) {
		return true
	}

	if hasDrivePrefix(p) {
		return true
	}

	return IsStream(p)
}

// IsWindowsPath reports whether a path follows Windows conventions: a drive
// letter ("C:\dir", "c:/dir", "C:"), a UNC prefix ("\\server\share") or
// backslash separators outside of a stream URI.
func IsWindowsPath(p string) bool {
	if p == "" {
		return false
	}

	if hasDrivePrefix(p) || isBareDrive(p) {
		return true
	}

	if strings.HasPrefix(p, uncPrefix) {
		return true
	}

	return strings.ContainsRune(p, '\\') && !IsStream(p)
}

// IsStream reports whether a path is a stream URI, i.e. starts with a scheme
// followed by "://". A scheme needs at least two characters, so that a drive
// letter is never mistaken for one.
func IsStream(p string) bool {
	_, ok := streamScheme(p)

	return ok
}

// streamScheme returns the scheme of a stream URI (without "://").
func streamScheme(p string) (string, bool) {
	idx := strings.Index(p, schemeSeparator)
	if idx < 2 { //nolint:mnd
		return "", false
	}

	scheme := p[:idx]
	if !isLetter(scheme[0]) {
		return "", false
	}

	for i := 1; i < len(scheme); i++ {
		c := scheme[i]
		if !isLetter(c) && !isDigit(c) && c != '+' && c != '-' && c != '.' {
			return "", false
		}
	}

	return scheme, true
}

// Normalize converts a path to forward slashes and cleans it lexically. A
// stream scheme, a drive letter and a UNC prefix are kept intact.
func Normalize(p string) string {
	if p == "" {
		return ""
	}

	var prefix string

	if scheme, ok := streamScheme(p); ok {
		prefix = scheme + schemeSeparator
		p = p[len(prefix):]
	}

	p = strings.ReplaceAll(p, `\`, "/")

	if prefix == "" && len(p) >= 2 && isLetter(p[0]) && p[1] == ':' {
		prefix = p[:2]
		p = p[2:]
	}

	unc := prefix == "" && strings.HasPrefix(p, "//")

	if p == "" {
		return prefix
	}

	cleaned := path.Clean(p)
	if unc {
		cleaned = "/" + cleaned
	}

	return prefix + cleaned
}

func hasDrivePrefix(p string) bool {
	return len(p) >= 3 && isLetter(p[0]) && p[1] == ':' && isSeparator(p[2]) //nolint:mnd
}

func isBareDrive(p string) bool {
	return len(p) == 2 && isLetter(p[0]) && p[1] == ':' //nolint:mnd
}

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
