package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile       string
	logLevel      string
	logFormat     string
	refreshMillis int
)

var rootCmd = &cobra.Command{
	Use:   "gox3d",
	Short: "Declarative 3D charts for the browser",
	Long: `A CLI tool that turns tabular readings into X3D scenes rendered in the
browser by x3dom.

Features:
  - Table summaries: keys, totals, extents and color thresholds
  - Surface plots of multi-series tables
  - Interactive scatter plots from CSV, Parquet or MySQL sources
  - Periodic redraw with stale-frame protection
  - PNG previews for quick inspection`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gox3d.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Scatter overrides
	rootCmd.PersistentFlags().IntVar(&refreshMillis, "refresh-ms", 0,
		"Override the scatter redraw interval in milliseconds")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel      string
	LogFormat     string
	RefreshMillis int
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:      logLevel,
		LogFormat:     logFormat,
		RefreshMillis: refreshMillis,
	}
}

// loadConfig reads the config file and applies CLI overrides. A missing file
// is an error unless optional is set, in which case defaults are used.
func loadConfig(optional bool) (*config.Config, error) {
	configFile := GetConfigFile()

	var cfg *config.Config
	if _, statErr := os.Stat(configFile); optional && os.IsNotExist(statErr) {
		cfg = config.DefaultConfig()
	} else {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.RefreshMillis)
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
