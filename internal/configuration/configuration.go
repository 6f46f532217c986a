// Package configuration implements the reading of Unix-type (KEY=value)
// configuration files and their mapping into the application configuration.
package configuration

import (
	"strconv"
	"strings"
)

type genericConfigProvider interface {
	Read(filenames ...string) (map[string]string, error)
}

// Handler is the principal implementation of the configuration reading.
type Handler struct {
	genericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		genericHandler: genericHandler,
	}
}

// ReadGeneric reads configuration files into a map (map[key]value).
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.genericHandler.Read(filenames...)
}

// MapKeyToString returns the value of a key, or an empty string if the key
// does not exist.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return strings.TrimSpace(value)
	}

	return ""
}

// MapKeyToOctal returns the value of a key parsed as an octal number (with
// or without a leading zero), or -1 if the key does not exist or is invalid.
func (c *Handler) MapKeyToOctal(envMap map[string]string, key string) int64 {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}

	value = strings.TrimPrefix(strings.TrimPrefix(value, "0o"), "0O")

	//nolint:mnd
	intValue, err := strconv.ParseInt(value, 8, 32)
	if err != nil || intValue < 0 {
		return -1
	}

	return intValue
}

// MapKeyToBool returns the value of a key as boolean, and if the key existed
// with a valid boolean value at all.
func (c *Handler) MapKeyToBool(envMap map[string]string, key string) (bool, bool) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return false, false
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}

	return boolValue, true
}
