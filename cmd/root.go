package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/pinyin/internal/catalog"
	"github.com/abhisek/pinyin/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pinyin",
	Short: "Mandarin tone practice in the terminal",
	Long:  "Pinyin Master: read a character aloud, get feedback on tone, initial and final.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/pinyin/config.toml)")
	rootCmd.PersistentFlags().String("catalog", "", "JSON or YAML catalog file (overrides practice.catalog)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed for simulated recognition (overrides practice.seed)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// resolveConfigPath returns --config if set, else the XDG default.
func resolveConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

// loadConfig reads the config file and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	path := resolveConfigPath(cmd)
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, fmt.Errorf("load config %s: %w", path, err)
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.Practice.Catalog = p
	}
	if cmd.Flags().Changed("seed") {
		cfg.Practice.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	return cfg, path, nil
}

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog(cfg config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	if cfg.Practice.Catalog == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.Practice.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", slog.String("path", cfg.Practice.Catalog), slog.Int("items", cat.Len()))
	return cat, nil
}

// newRand returns a PCG source; seed 0 draws a fresh seed.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
