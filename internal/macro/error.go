package macro

import "errors"

var (
	// ErrMacroNotFound is an error that occurs when a macro is called that was
	// never registered.
	ErrMacroNotFound = errors.New("macro not found")

	// ErrMacroExists is an error that occurs when a name is registered twice.
	ErrMacroExists = errors.New("macro already registered")

	// ErrInvalidMacroName is an error that occurs when a macro is registered
	// with an empty name or without a function.
	ErrInvalidMacroName = errors.New("invalid macro name")

	// ErrRegistryFrozen is an error that occurs when a macro is registered
	// after the registry was frozen.
	ErrRegistryFrozen = errors.New("registry is frozen")
)
