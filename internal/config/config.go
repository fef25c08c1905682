// Package config loads application settings from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyDataDir     = "data.dir"
	KeyLogLevel    = "logging.level"
	KeyLogFormat   = "logging.format"
	DefaultDataDir = "$HOME/.local/share/expense"
)

// Config holds the resolved settings for one run.
type Config struct {
	DataDir   string
	LogLevel  string
	LogFormat string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, DefaultDataDir)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load reads the settings from v, expanding the data directory path.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		DataDir:   ExpandPath(strings.TrimSpace(v.GetString(KeyDataDir))),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
	}

	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("%w: %s must not be empty", common.ErrInvalidConfig, KeyDataDir)
	}

	return cfg, nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
