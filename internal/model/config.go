package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig holds limits for the persisted task data.
type StorageConfig struct {
	// MaxBytes is the soft cap on the serialized task list. When the list
	// crosses the cap the oldest tasks are evicted.
	MaxBytes int `mapstructure:"max_bytes" yaml:"max_bytes"`
}

// NotifyConfig holds settings for the reminder scheduler.
type NotifyConfig struct {
	// Enabled controls whether desktop notifications are attempted.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// TickIntervalSec is how often (in seconds) due tasks are scanned.
	TickIntervalSec int `mapstructure:"tick_interval_sec" yaml:"tick_interval_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath overrides the default database location when set.
	DBPath  string        `mapstructure:"db_path" yaml:"db_path"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Notify  NotifyConfig  `mapstructure:"notify" yaml:"notify"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskflow/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskflow", "config.yaml")
}

// DefaultDBPath returns the default path for the task database,
// located next to the configuration file.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "taskflow.db")
	}
	return filepath.Join(home, ".config", "taskflow", "taskflow.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{MaxBytes: 4 * 1024 * 1024},
		Notify:  NotifyConfig{Enabled: true, TickIntervalSec: 60},
		Display: DisplayConfig{Theme: "default"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.max_bytes", 4*1024*1024)
	v.SetDefault("notify.enabled", true)
	v.SetDefault("notify.tick_interval_sec", 60)
	v.SetDefault("display.theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("storage", cfg.Storage)
	v.Set("notify", cfg.Notify)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
