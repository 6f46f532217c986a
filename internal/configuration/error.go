package configuration

import "errors"

// ErrInvalidValue is an error that occurs when a configuration key holds a
// value that cannot be interpreted.
var ErrInvalidValue = errors.New("invalid configuration value")
