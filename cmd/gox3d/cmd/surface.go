package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gox3d/internal/config"
)

var (
	surfacePlot      string
	surfaceInput     string
	surfaceOutput    string
	surfaceSceneOnly bool
	surfaceRotate    bool
	surfaceView      string
)

var surfaceCmd = &cobra.Command{
	Use:   "surface",
	Short: "Render a surface plot page",
	Long: `Surface renders a multi-series table as a colored surface inside a
three plane axis and writes a standalone x3dom page.

The table comes from a configured plot (--plot) or directly from a table
document (--input); with --input the surface defaults are used.

Example:
  gox3d surface --plot landscape --output landscape.html
  gox3d surface --input readings.yaml --view dimetric --scene-only`,
	RunE: runSurface,
}

func init() {
	surfaceCmd.Flags().StringVarP(&surfacePlot, "plot", "p", "",
		"Surface plot name from configuration file")
	surfaceCmd.Flags().StringVarP(&surfaceInput, "input", "i", "",
		"Table document to plot instead of a configured plot")
	surfaceCmd.MarkFlagsOneRequired("plot", "input")
	surfaceCmd.MarkFlagsMutuallyExclusive("plot", "input")

	surfaceCmd.Flags().StringVarP(&surfaceOutput, "output", "o", "",
		"Output file (default: plot output or stdout)")
	surfaceCmd.Flags().BoolVar(&surfaceSceneOnly, "scene-only", false,
		"Write only the x3d element")
	surfaceCmd.Flags().BoolVar(&surfaceRotate, "rotate", false,
		"Rotate the table before plotting")
	surfaceCmd.Flags().StringVar(&surfaceView, "view", "",
		"Camera preset (left, side, top, dimetric)")

	rootCmd.AddCommand(surfaceCmd)
}

func runSurface(cmd *cobra.Command, args []string) error {
	title := surfaceInput
	plot := &config.PlotConfig{Type: config.PlotTypeSurface, Input: surfaceInput}
	if surfacePlot != "" {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		if plot, err = cfg.GetPlot(surfacePlot); err != nil {
			return err
		}
		if plot.Type != config.PlotTypeSurface {
			return fmt.Errorf("plot %q is a %s plot", surfacePlot, plot.Type)
		}
		title = surfacePlot
	}
	if surfaceRotate {
		plot.Rotate = true
	}
	if surfaceView != "" {
		plot.Viewpoint = surfaceView
	}

	output := surfaceOutput
	if output == "" {
		output = plot.Output
	}
	out, err := createOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	return renderSurface(out, title, plot, surfaceSceneOnly)
}
