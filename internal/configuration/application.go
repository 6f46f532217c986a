package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

const (
	// DefaultConfigFile is read if no configuration file is given explicitly
	// and it exists.
	DefaultConfigFile = "/etc/gofs.conf"

	// NameMatchAny combines name patterns so that any of them has to match.
	NameMatchAny = "any"

	// NameMatchAll combines name patterns so that all of them have to match.
	NameMatchAll = "all"
)

// AppConfiguration is the principal structure holding the application
// configuration.
type AppConfiguration struct {
	LogLevel    slog.Level
	FileMode    os.FileMode
	DirMode     os.FileMode
	NameMatch   string
	FollowLinks bool
}

// NewAppConfiguration returns a pointer to a new [AppConfiguration] holding
// the default values.
func NewAppConfiguration() *AppConfiguration {
	return &AppConfiguration{
		LogLevel:  slog.LevelInfo,
		FileMode:  0o666, //nolint:mnd
		DirMode:   0o777, //nolint:mnd
		NameMatch: NameMatchAny,
	}
}

// Load reads a configuration file into an [AppConfiguration], starting from
// the defaults. An empty filename reads [DefaultConfigFile] if it exists, and
// returns the defaults otherwise. Keys not present in the file keep their
// default value.
func (c *Handler) Load(filename string) (*AppConfiguration, error) {
	config := NewAppConfiguration()

	if filename == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return config, nil
			}

			return nil, fmt.Errorf("(config) failed to stat %s: %w", DefaultConfigFile, err)
		}
		filename = DefaultConfigFile
	}

	envMap, err := c.ReadGeneric(filename)
	if err != nil {
		return nil, fmt.Errorf("(config) failed to read %s: %w", filename, err)
	}

	if err := c.apply(config, envMap); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Handler) apply(config *AppConfiguration, envMap map[string]string) error {
	if value := c.MapKeyToString(envMap, "GOFS_LOG_LEVEL"); value != "" {
		if err := config.LogLevel.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("(config) %w: GOFS_LOG_LEVEL=%s", ErrInvalidValue, value)
		}
	}

	if _, exists := envMap["GOFS_FILE_MODE"]; exists {
		mode := c.MapKeyToOctal(envMap, "GOFS_FILE_MODE")
		if mode < 0 || mode > 0o777 {
			return fmt.Errorf("(config) %w: GOFS_FILE_MODE=%s", ErrInvalidValue, envMap["GOFS_FILE_MODE"])
		}
		config.FileMode = os.FileMode(mode)
	}

	if _, exists := envMap["GOFS_DIR_MODE"]; exists {
		mode := c.MapKeyToOctal(envMap, "GOFS_DIR_MODE")
		if mode < 0 || mode > 0o777 {
			return fmt.Errorf("(config) %w: GOFS_DIR_MODE=%s", ErrInvalidValue, envMap["GOFS_DIR_MODE"])
		}
		config.DirMode = os.FileMode(mode)
	}

	if value := c.MapKeyToString(envMap, "GOFS_NAME_MATCH"); value != "" {
		value = strings.ToLower(value)
		if value != NameMatchAny && value != NameMatchAll {
			return fmt.Errorf("(config) %w: GOFS_NAME_MATCH=%s", ErrInvalidValue, value)
		}
		config.NameMatch = value
	}

	if _, exists := envMap["GOFS_FOLLOW_LINKS"]; exists {
		follow, ok := c.MapKeyToBool(envMap, "GOFS_FOLLOW_LINKS")
		if !ok {
			return fmt.Errorf("(config) %w: GOFS_FOLLOW_LINKS=%s", ErrInvalidValue, envMap["GOFS_FOLLOW_LINKS"])
		}
		config.FollowLinks = follow
	}

	return nil
}
