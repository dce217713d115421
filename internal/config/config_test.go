package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Config{})
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DataPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 14, cfg.BackupKeep)
}

func TestLoadEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("DAYBOOK_DATA_PATH", "/tmp/elsewhere")
	t.Setenv("DAYBOOK_LOG_LEVEL", "debug")
	t.Setenv("DAYBOOK_BACKUP_KEEP", "3")

	cfg, err := Load(Config{})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere", cfg.DataPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.BackupKeep)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("DAYBOOK_DATA_PATH", "/tmp/from-env")
	t.Setenv("DAYBOOK_LOG_LEVEL", "debug")

	cfg, err := Load(Config{DataPath: "/tmp/from-flag"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-flag", cfg.DataPath)
	// Unset flags still fall through to the environment.
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestUsesSQLite(t *testing.T) {
	assert.True(t, Config{DataPath: "/data/daybook.db"}.UsesSQLite())
	assert.False(t, Config{DataPath: "/data/daybook"}.UsesSQLite())
	assert.False(t, Config{DataPath: "/data/daybook.json"}.UsesSQLite())
}
