package pathing

import "strings"

// Basename returns the last element of a path, understanding both separator
// styles. Trailing separators are ignored, an empty or root path yields "".
func Basename(p string) string {
	p = strings.TrimRight(strings.ReplaceAll(p, `\`, "/"), "/")
	if p == "" {
		return ""
	}

	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		return p[idx+1:]
	}

	return p
}

// Extension returns the extension of the last element of a path, without the
// leading dot. A name without a dot has no extension.
func Extension(p string) string {
	base := Basename(p)

	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}

	return base[idx+1:]
}

// Filename returns the last element of a path without its extension.
func Filename(p string) string {
	base := Basename(p)

	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return base
	}

	return base[:idx]
}
