//go:build !unix

package schema

// Unix is an empty stand-in on platforms without Unix syscalls. Any
// functionality depending on it falls back to platform defaults.
type Unix struct{}
