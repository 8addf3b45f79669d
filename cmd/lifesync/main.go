package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Valentin6743/LS/internal/config"
	"github.com/Valentin6743/LS/internal/logging"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "lifesync",
	Short:         "LifeSync organizer backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (environment overrides it)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// loadConfig reads and checks the configuration named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	if err := rootCmd.Execute(); err != nil {
		slog.Error("lifesync failed", "error", err)
		os.Exit(1)
	}
}
