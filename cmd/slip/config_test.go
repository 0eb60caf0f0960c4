package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slip.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, `
capacity = 64
read_size = 8
no_header = true
keep_empty = true
resync = false
log_level = " DEBUG "
`))
	require.NoError(t, err)
	assert.Equal(t, config{
		Capacity:  64,
		ReadSize:  8,
		NoHeader:  true,
		KeepEmpty: true,
		Resync:    false,
		LogLevel:  "debug",
	}, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	for _, body := range []string{
		"capacity = 1",
		"read_size = 0",
		"capacity = \"big\"",
		"baud = 9600",
	} {
		_, err := loadConfig(writeConfig(t, body))
		assert.Error(t, err, "config %q", body)
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
	assert.True(t, logger.Core().Enabled(1))

	_, err = newLogger("loud")
	assert.Error(t, err)
}
