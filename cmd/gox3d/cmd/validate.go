package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/database"
	"github.com/dbsmedya/gox3d/internal/scatter"
)

var validateSkipDB bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and plot sources",
	Long: `Validate checks the configuration file and the sources behind every plot
to ensure the plots can render.

Checks performed:
  - Configuration syntax and required fields
  - Input files exist
  - Scatter axes, band and source columns are valid
  - Database connectivity (when a plot reads from MySQL)

Example:
  gox3d validate --config gox3d.yaml`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateSkipDB, "skip-db", false,
		"Skip the database connectivity check")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	printHeader("Configuration Validation")
	fmt.Fprintf(outputWriter, "Config file: %s\n", configFile)
	fmt.Fprintf(outputWriter, "Plots found: %d\n\n", len(cfg.Plots))

	if err := cfg.Validate(); err != nil {
		printFail("configuration is invalid")
		fmt.Fprintln(outputWriter, err)
		return fmt.Errorf("validation failed")
	}
	printOK("configuration is valid")

	hasErrors := false
	names := cfg.ListPlots()
	sort.Strings(names)
	for _, name := range names {
		plot, _ := cfg.GetPlot(name)
		if err := checkPlot(cfg, plot); err != nil {
			printFail("%s: %v", name, err)
			hasErrors = true
			continue
		}
		printOK("%s: %s", name, plotSource(plot))
	}

	if cfg.UsesDatabase() && !validateSkipDB {
		if err := checkDatabase(cfg); err != nil {
			printFail("database: %v", err)
			hasErrors = true
		} else {
			printOK("database: %s", database.BuildDSNRedacted(&cfg.Database))
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed for one or more plots")
	}
	fmt.Fprintln(outputWriter)
	printOK("all plots validated successfully")
	return nil
}

func checkPlot(cfg *config.Config, plot *config.PlotConfig) error {
	if plot.SourceFormat() != "mysql" {
		if _, err := os.Stat(plot.Input); err != nil {
			return fmt.Errorf("input: %w", err)
		}
	}
	if plot.Type == config.PlotTypeScatter {
		if err := scatter.ControlsFor(plot).Validate(cfg); err != nil {
			return err
		}
	}
	return nil
}

func checkDatabase(cfg *config.Config) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := context.Background()
	m := database.NewManager(&cfg.Database, log)
	if err := m.Connect(ctx); err != nil {
		return err
	}
	defer m.Close()
	return m.Ping(ctx)
}
