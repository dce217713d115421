// Package config resolves daybook's runtime settings. Precedence is CLI
// flag, then DAYBOOK_* environment variable, then the built-in default; the
// merge is done once at startup and the result passed down explicitly, so
// nothing in the program reads configuration lazily.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	// DataPath points at either a directory of JSON documents or a .db
	// file for the SQLite backend.
	DataPath string `env:"DATA_PATH"`
	LogLevel string `env:"LOG_LEVEL"`
	// BackupKeep is how many backup snapshots to retain.
	BackupKeep int `env:"BACKUP_KEEP"`
}

// Default returns the built-in configuration. The data directory lives under
// the user config dir, matching where the desktop predecessor kept its
// documents.
func Default() (Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return Config{
		DataPath:   filepath.Join(configDir, "daybook"),
		LogLevel:   "info",
		BackupKeep: 14,
	}, nil
}

// Load builds the effective config: overrides (typically CLI flags) merged
// over environment values merged over defaults.
func Load(overrides Config) (Config, error) {
	cfg := overrides

	envCfg := Config{}
	if err := env.ParseWithOptions(&envCfg, env.Options{Prefix: "DAYBOOK_"}); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment config: %w", err)
	}
	if err := mergo.Merge(&cfg, envCfg); err != nil {
		return Config{}, fmt.Errorf("failed to merge configs: %w", err)
	}

	defaults, err := Default()
	if err != nil {
		return Config{}, err
	}
	if err := mergo.Merge(&cfg, defaults); err != nil {
		return Config{}, fmt.Errorf("failed to merge configs: %w", err)
	}

	return cfg, nil
}

// UsesSQLite reports whether the data path selects the embedded-database
// backend.
func (c Config) UsesSQLite() bool {
	return filepath.Ext(c.DataPath) == ".db"
}
