package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/blasereplay/internal/chronicler"
	"github.com/pable/blasereplay/internal/config"
)

var (
	configPath string
	archiveURL string
	cachePath  string
	noCache    bool
)

var rootCmd = &cobra.Command{
	Use:   "blasereplay",
	Short: "Blaseball archive viewer",
	Long:  "Browse archived Blaseball games, boss fights, and player histories from the terminal.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config file")
	rootCmd.PersistentFlags().StringVar(&archiveURL, "archive", "", "archive API root (overrides config)")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "finished-page cache path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable the finished-page cache")

	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(gameCmd)
	rootCmd.AddCommand(fightCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(boxscoreCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the effective configuration from file plus flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if archiveURL != "" {
		cfg.ArchiveURL = archiveURL
	}
	if cachePath != "" {
		cfg.CachePath = cachePath
	}
	if noCache {
		cfg.CachePath = ""
	}
	return cfg, nil
}

// newClient builds the archive client for one command invocation. The cache
// is optional; a cache that fails to open degrades to uncached fetches.
func newClient(cfg config.Config) (*chronicler.Client, func()) {
	var cache *chronicler.Cache
	cleanup := func() {}
	if cfg.CachePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.CachePath), 0755); err == nil {
			if c, err := chronicler.OpenCache(cfg.CachePath); err == nil {
				cache = c
				cleanup = func() { c.Close() }
			} else {
				fmt.Fprintf(os.Stderr, "cache disabled: %v\n", err)
			}
		}
	}
	return chronicler.NewClient(cfg.ArchiveURL, cache), cleanup
}
