// Package schema provides the principal schematics for all other packages. It
// defines the entry types, metadata and error taxonomy shared across the
// codebase and provides thin implementations wrapping the operating system
// syscalls, so that packages can receive them as injectable providers.
package schema
