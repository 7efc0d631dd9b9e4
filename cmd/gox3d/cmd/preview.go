package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gox3d/internal/preview"
)

var (
	previewPlot   string
	previewX      string
	previewZ      string
	previewBand   string
	previewOutput string
	previewWidth  int
	previewHeight int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a PNG side view of a scatter plot",
	Long: `Preview loads one frame for a scatter plot and draws the x/y projection
as a PNG image. Useful to check a source and band without a browser.

Example:
  gox3d preview --plot plant --output plant.png --band B8`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewPlot, "plot", "p", "",
		"Scatter plot name from configuration file (required)")
	previewCmd.MarkFlagRequired("plot")
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "",
		"PNG output file (required)")
	previewCmd.MarkFlagRequired("output")

	previewCmd.Flags().StringVar(&previewX, "x", "", "Override the x axis column")
	previewCmd.Flags().StringVar(&previewZ, "z", "", "Override the z axis column")
	previewCmd.Flags().StringVar(&previewBand, "band", "", "Override the value band")
	previewCmd.Flags().IntVar(&previewWidth, "width", preview.DefaultWidth, "Image width in pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", preview.DefaultHeight, "Image height in pixels")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	plot, err := scatterPlotConfig(cfg, previewPlot)
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

	controls := scatterControls(plot, previewX, "", previewZ, previewBand)
	p, err := loadScatter(ctx, cfg, previewPlot, plot, controls, db)
	if err != nil {
		return err
	}

	out, err := createOutput(previewOutput)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := preview.RenderPNG(out, cfg, p.Frame(), controls, preview.Options{
		Width:  previewWidth,
		Height: previewHeight,
		Title:  previewPlot,
	}); err != nil {
		return err
	}
	if previewOutput != "-" {
		printOK("wrote %s", previewOutput)
	}
	return nil
}
