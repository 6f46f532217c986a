// Package macro implements an explicit registry of named extension functions.
// Functions are registered while a registry is being built, after which it is
// frozen and becomes safe for concurrent use.
package macro

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Func is an extension function. It receives the value it is called on
// and arbitrary arguments.
type Func[T any] func(ctx T, args ...any) (any, error)

// Registry maps names to functions of type [Func].
type Registry[T any] struct {
	sync.RWMutex
	funcs    map[string]Func[T]
	reserved map[string]struct{}
	frozen   bool
}

// NewRegistry returns a pointer to a new [Registry]. The reserved names can
// never be registered, they are compared case-insensitively.
func NewRegistry[T any](reserved ...string) *Registry[T] {
	r := &Registry[T]{
		funcs:    make(map[string]Func[T]),
		reserved: make(map[string]struct{}, len(reserved)),
	}

	for _, name := range reserved {
		r.reserved[strings.ToLower(name)] = struct{}{}
	}

	return r
}

// Register adds a named function to the [Registry].
func (r *Registry[T]) Register(name string, fn Func[T]) error {
	r.Lock()
	defer r.Unlock()

	if r.frozen {
		return fmt.Errorf("(macro) %w: %s", ErrRegistryFrozen, name)
	}

	if strings.TrimSpace(name) == "" || fn == nil {
		return fmt.Errorf("(macro) %w: %q", ErrInvalidMacroName, name)
	}

	if _, ok := r.reserved[strings.ToLower(name)]; ok {
		return fmt.Errorf("(macro) %w: %s (reserved)", ErrMacroExists, name)
	}

	if _, ok := r.funcs[name]; ok {
		return fmt.Errorf("(macro) %w: %s", ErrMacroExists, name)
	}

	r.funcs[name] = fn

	return nil
}

// Freeze prevents any further registrations.
func (r *Registry[T]) Freeze() {
	r.Lock()
	defer r.Unlock()

	r.frozen = true
}

// Has returns true if a function is registered under a name.
func (r *Registry[T]) Has(name string) bool {
	r.RLock()
	defer r.RUnlock()

	_, ok := r.funcs[name]

	return ok
}

// Names returns the sorted names of all registered functions.
func (r *Registry[T]) Names() []string {
	r.RLock()
	defer r.RUnlock()

	return slices.Sorted(maps.Keys(r.funcs))
}

// Call calls the function registered under a name with the given arguments.
func (r *Registry[T]) Call(ctx T, name string, args ...any) (any, error) {
	r.RLock()
	fn, ok := r.funcs[name]
	r.RUnlock()

	if !ok {
		return nil, fmt.Errorf("(macro) %w: %s", ErrMacroNotFound, name)
	}

	return fn(ctx, args...)
}
