package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/abhisek/sensei/internal/config"
	"github.com/abhisek/sensei/internal/store"
)

// Set by the root command before any subcommand runs.
var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sensei",
	Short: "Aikido movement coach",
	Long: "Sensei turns pose landmarks captured while performing an aikido technique\n" +
		"into spoken coaching feedback.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SENSEI_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides SENSEI_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(techniquesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		c.Log.Level = lvl
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, _ := c.LogLevel()
	cfg = c
	logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
	slog.SetDefault(logger)
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file / SENSEI_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Store.DB != "" {
		return cfg.Store.DB, store.EnsureDir(cfg.Store.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func audioDir() (store.AudioDir, error) {
	if cfg.Store.AudioDir != "" {
		return store.AudioDir{Root: cfg.Store.AudioDir}, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return store.AudioDir{}, err
	}
	return store.AudioDir{Root: filepath.Join(dir, "audio")}, nil
}
