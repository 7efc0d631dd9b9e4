package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/scatter"
)

var listPlotsCmd = &cobra.Command{
	Use:   "list-plots",
	Short: "List all plots defined in configuration",
	Long: `List-plots displays all plots defined in the configuration file along
with their type, source and output.

Example:
  gox3d list-plots --config gox3d.yaml`,
	RunE: runListPlots,
}

func init() {
	rootCmd.AddCommand(listPlotsCmd)
}

func runListPlots(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	names := cfg.ListPlots()
	if len(names) == 0 {
		fmt.Fprintf(outputWriter, "No plots defined in %s\n", configFile)
		return nil
	}
	sort.Strings(names)

	fmt.Fprintf(outputWriter, "Plots defined in %s:\n\n", configFile)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		plot, err := cfg.GetPlot(name)
		if err != nil {
			return fmt.Errorf("failed to get plot %q: %w", name, err)
		}
		rows = append(rows, []string{name, plot.Type, plotSource(plot), plotAxes(plot), orNone(plot.Output)})
	}
	printTable([]string{"Name", "Type", "Source", "Axes", "Output"}, rows)

	fmt.Fprintf(outputWriter, "\nTotal: %d plot(s)\n", len(names))
	return nil
}

func plotSource(plot *config.PlotConfig) string {
	format := plot.SourceFormat()
	if format == "mysql" {
		return "mysql:" + plot.Table
	}
	if format == "" {
		return plot.Input
	}
	return format + ":" + plot.Input
}

func plotAxes(plot *config.PlotConfig) string {
	if plot.Type != config.PlotTypeScatter {
		return "-"
	}
	c := scatter.ControlsFor(plot)
	return fmt.Sprintf("%s/%s/%s [%s]", c.X, c.Y, c.Z, c.Band)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
