package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gox3d/internal/config"
)

var (
	scatterPlotName string
	scatterX        string
	scatterY        string
	scatterZ        string
	scatterBand     string
	scatterOutput   string
)

var scatterCmd = &cobra.Command{
	Use:   "scatter",
	Short: "Render a scatter plot page",
	Long: `Scatter loads one frame of readings for a configured scatter plot and
writes a standalone x3dom page with the three axes and one sphere per row.

Rows outside the selected band, or with a missing value, are hidden.

Example:
  gox3d scatter --plot plant --output plant.html
  gox3d scatter --plot plant --x TAF --z O2 --band B7`,
	RunE: runScatter,
}

func init() {
	scatterCmd.Flags().StringVarP(&scatterPlotName, "plot", "p", "",
		"Scatter plot name from configuration file (required)")
	scatterCmd.MarkFlagRequired("plot")

	scatterCmd.Flags().StringVar(&scatterX, "x", "", "Override the x axis column")
	scatterCmd.Flags().StringVar(&scatterY, "y", "", "Override the y axis column")
	scatterCmd.Flags().StringVar(&scatterZ, "z", "", "Override the z axis column")
	scatterCmd.Flags().StringVar(&scatterBand, "band", "", "Override the value band")
	scatterCmd.Flags().StringVarP(&scatterOutput, "output", "o", "",
		"Output file (default: plot output or stdout)")

	rootCmd.AddCommand(scatterCmd)
}

func runScatter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	plot, err := scatterPlotConfig(cfg, scatterPlotName)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := context.Background()
	db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	controls := scatterControls(plot, scatterX, scatterY, scatterZ, scatterBand)
	p, err := loadScatter(ctx, cfg, scatterPlotName, plot, controls, db)
	if err != nil {
		return err
	}
	log.WithPlot(scatterPlotName).Infow("scatter plot loaded",
		"rows", p.Frame().Len(),
		"x", controls.X, "y", controls.Y, "z", controls.Z, "band", controls.Band,
	)

	output := scatterOutput
	if output == "" {
		output = plot.Output
	}
	out, err := createOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	return writeScatterPage(out, scatterPlotName, p)
}

func scatterPlotConfig(cfg *config.Config, name string) (*config.PlotConfig, error) {
	plot, err := cfg.GetPlot(name)
	if err != nil {
		return nil, err
	}
	if plot.Type != config.PlotTypeScatter {
		return nil, fmt.Errorf("plot %q is a %s plot", name, plot.Type)
	}
	return plot, nil
}
