// Package cmd implements the desafio200 CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/desafio200/internal/challenge"
	"github.com/sadopc/desafio200/internal/config"
	"github.com/sadopc/desafio200/internal/filekv"
	"github.com/sadopc/desafio200/internal/persist"
	"github.com/sadopc/desafio200/internal/rediskv"
	"github.com/sadopc/desafio200/internal/store"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagBackend string
)

// now is swapped in tests.
var now = time.Now

var rootCmd = &cobra.Command{
	Use:          "desafio200",
	Short:        "Track the 200 deposits savings challenge",
	Long:         "Mark each of the 200 numbered deposits as you make them, and follow totals and a completion forecast.",
	RunE:         runTUI,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "Storage backend override: sqlite, file or redis")
}

// env is what every command needs: the effective config, a loaded tracker
// and the resources to release afterwards.
type env struct {
	cfg      config.Config
	tracker  *challenge.Tracker
	location string
	closers  []io.Closer
}

// Close releases the backend and the log file. Logging goes back to stderr
// so nothing writes to the closed file afterwards.
func (e *env) Close() error {
	log.SetOutput(os.Stderr)
	var first error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return cfg, err
	}
	if flagBackend != "" {
		cfg.Storage.Backend = flagBackend
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// openEnv loads config, points logging at the log file and restores the
// stored state.
func openEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	logFile, err := setupLogging(cfg)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, logFile)

	kv, closer, location, err := openKV(cfg)
	if err != nil {
		e.Close()
		return nil, err
	}
	if closer != nil {
		e.closers = append(e.closers, closer)
	}
	e.location = location

	e.tracker = challenge.NewTracker(persist.New(kv))
	e.tracker.InitFromStorage()
	log.WithFields(log.Fields{
		"backend":   cfg.Storage.Backend,
		"location":  location,
		"completed": e.tracker.Stats().Completed,
	}).Debug("state loaded")
	return e, nil
}

// openKV builds the configured storage backend. The closer is nil when the
// backend holds nothing open.
func openKV(cfg config.Config) (persist.KV, io.Closer, string, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		dir := cfg.StoragePath()
		kv, err := filekv.New(dir)
		if err != nil {
			return nil, nil, "", fmt.Errorf("opening file store: %w", err)
		}
		return kv, nil, dir, nil

	case config.BackendRedis:
		kv, err := rediskv.Open(cfg.Storage.RedisURL)
		if err != nil {
			return nil, nil, "", fmt.Errorf("connecting to redis: %w", err)
		}
		return kv, kv, cfg.Storage.RedisURL, nil

	default:
		path := cfg.StoragePath()
		s, err := store.New(path)
		if err != nil {
			return nil, nil, "", fmt.Errorf("opening database: %w", err)
		}
		return s, s, path, nil
	}
}

func setupLogging(cfg config.Config) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	log.SetOutput(f)
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	return f, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid deposit id %q", s)
	}
	return id, nil
}

// parseAmount accepts both "12.50" and "12,50".
func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}
