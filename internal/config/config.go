// Package config loads and saves the desafio200 TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sadopc/desafio200/internal/store"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config holds all desafio200 configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Display DisplayConfig `toml:"display"`
}

// StorageConfig selects where the challenge state is kept.
type StorageConfig struct {
	Backend  string `toml:"backend"`
	Path     string `toml:"path,omitempty"` // sqlite file or file-backend directory
	RedisURL string `toml:"redis_url,omitempty"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DisplayConfig holds presentation preferences.
type DisplayConfig struct {
	ExportDir string `toml:"export_dir,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend:  BackendSQLite,
			RedisURL: "redis://localhost:6379/0",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the per-user configuration directory.
func Dir() string {
	if cfg, err := os.UserConfigDir(); err == nil {
		return filepath.Join(cfg, "desafio200")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "desafio200")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the default config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Validate rejects unknown backends.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendRedis:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q (want sqlite, file or redis)", c.Storage.Backend)
}

// StoragePath returns the configured storage path or the backend default.
func (c Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if c.Storage.Backend == BackendFile {
		return filepath.Join(Dir(), "data")
	}
	if p, err := store.DefaultDBPath(); err == nil {
		return p
	}
	return filepath.Join(Dir(), "desafio200.db")
}

// LogPath returns the configured log file or the default under Dir.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(Dir(), "desafio200.log")
}

// ExportDir returns where export files are written, defaulting to the home
// directory.
func (c Config) ExportDir() string {
	if c.Display.ExportDir != "" {
		return c.Display.ExportDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
