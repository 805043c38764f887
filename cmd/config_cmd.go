package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sadopc/desafio200/internal/config"
	"github.com/sadopc/desafio200/internal/persist"
	"github.com/sadopc/desafio200/internal/store"
	"github.com/spf13/cobra"
)

var flagInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagInit, "init", false, "Write a config file with the current settings")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	path := flagConfig
	if path == "" {
		path = config.Path()
	}
	if flagInit {
		if err := config.Save(path, cfg); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "  Config file: %s\n", path)
	if config.Exists(path) {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Storage]")
	fmt.Fprintf(out, "    Backend:     %s\n", cfg.Storage.Backend)
	if cfg.Storage.Backend == config.BackendRedis {
		fmt.Fprintf(out, "    Redis URL:   %s\n", cfg.Storage.RedisURL)
	} else {
		fmt.Fprintf(out, "    Path:        %s\n", cfg.StoragePath())
	}
	fmt.Fprintf(out, "    Storage key: %s\n", persist.StorageKey)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	fmt.Fprintf(out, "    Level: %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "    File:  %s\n", cfg.LogPath())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Display]")
	fmt.Fprintf(out, "    Export dir: %s\n", cfg.ExportDir())

	if cfg.Storage.Backend == config.BackendSQLite && config.Exists(cfg.StoragePath()) {
		s, err := store.New(cfg.StoragePath())
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.Entries()
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  [Stored keys]")
		if len(entries) == 0 {
			fmt.Fprintln(out, "    (none)")
		}
		for _, en := range entries {
			fmt.Fprintf(out, "    %s  %s  updated %s\n", en.Key, humanize.Bytes(uint64(en.Size)), humanize.Time(en.UpdatedAt))
		}
	}
	return nil
}
