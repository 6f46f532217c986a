package configuration

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConfigProvider struct {
	mock.Mock
}

func (m *mockConfigProvider) Read(filenames ...string) (map[string]string, error) {
	args := m.Called(filenames)

	envMap, _ := args.Get(0).(map[string]string)

	return envMap, args.Error(1)
}

// TestHandler_MapKeys tests the typed accessors for configuration keys.
func TestHandler_MapKeys(t *testing.T) {
	t.Parallel()

	c := NewHandler(&GodotenvProvider{})
	envMap := map[string]string{
		"STRING": " value ",
		"OCTAL":  "0755",
		"OCTAL2": "0o640",
		"BADOCT": "0999",
		"BOOL":   "true",
		"BADBOO": "maybe",
	}

	assert.Equal(t, "value", c.MapKeyToString(envMap, "STRING"))
	assert.Empty(t, c.MapKeyToString(envMap, "MISSING"))

	assert.Equal(t, int64(0o755), c.MapKeyToOctal(envMap, "OCTAL"))
	assert.Equal(t, int64(0o640), c.MapKeyToOctal(envMap, "OCTAL2"))
	assert.Equal(t, int64(-1), c.MapKeyToOctal(envMap, "BADOCT"))
	assert.Equal(t, int64(-1), c.MapKeyToOctal(envMap, "MISSING"))

	value, ok := c.MapKeyToBool(envMap, "BOOL")
	assert.True(t, ok)
	assert.True(t, value)

	_, ok = c.MapKeyToBool(envMap, "BADBOO")
	assert.False(t, ok)
}

// TestHandler_Load tests the loading of the application configuration.
func TestHandler_Load(t *testing.T) {
	t.Parallel()

	t.Run("Success_File", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "gofs.conf")
		require.NoError(t, os.WriteFile(path, []byte(
			"# comment\nGOFS_LOG_LEVEL=debug\nGOFS_FILE_MODE=0640\nGOFS_DIR_MODE=750\nGOFS_NAME_MATCH=ALL\nGOFS_FOLLOW_LINKS=yes\n",
		), 0o644))

		_, err := NewHandler(&GodotenvProvider{}).Load(path)
		require.ErrorIs(t, err, ErrInvalidValue, "yes is not a boolean")

		require.NoError(t, os.WriteFile(path, []byte(
			"# comment\nGOFS_LOG_LEVEL=debug\nGOFS_FILE_MODE=0640\nGOFS_DIR_MODE=750\nGOFS_NAME_MATCH=ALL\nGOFS_FOLLOW_LINKS=true\n",
		), 0o644))

		config, err := NewHandler(&GodotenvProvider{}).Load(path)
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, config.LogLevel)
		assert.Equal(t, os.FileMode(0o640), config.FileMode)
		assert.Equal(t, os.FileMode(0o750), config.DirMode)
		assert.Equal(t, NameMatchAll, config.NameMatch)
		assert.True(t, config.FollowLinks)
	})

	t.Run("Success_Defaults", func(t *testing.T) {
		t.Parallel()

		providerMock := &mockConfigProvider{}
		providerMock.On("Read", []string{"/test.conf"}).Return(map[string]string{}, nil)

		config, err := NewHandler(providerMock).Load("/test.conf")
		require.NoError(t, err)
		assert.Equal(t, NewAppConfiguration(), config)

		providerMock.AssertExpectations(t)
	})

	t.Run("Fail_Read", func(t *testing.T) {
		t.Parallel()

		readErr := errors.New("read failure")

		providerMock := &mockConfigProvider{}
		providerMock.On("Read", []string{"/test.conf"}).Return(nil, readErr)

		_, err := NewHandler(providerMock).Load("/test.conf")
		require.ErrorIs(t, err, readErr)
	})

	t.Run("Fail_MissingFile", func(t *testing.T) {
		t.Parallel()

		_, err := NewHandler(&GodotenvProvider{}).Load(filepath.Join(t.TempDir(), "missing.conf"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Fail_InvalidValues", func(t *testing.T) {
		t.Parallel()

		invalid := []map[string]string{
			{"GOFS_LOG_LEVEL": "loud"},
			{"GOFS_FILE_MODE": "rw"},
			{"GOFS_DIR_MODE": "01777"},
			{"GOFS_NAME_MATCH": "some"},
		}

		for _, envMap := range invalid {
			providerMock := &mockConfigProvider{}
			providerMock.On("Read", []string{"/test.conf"}).Return(envMap, nil)

			_, err := NewHandler(providerMock).Load("/test.conf")
			require.ErrorIs(t, err, ErrInvalidValue, "%v", envMap)
		}
	})
}
