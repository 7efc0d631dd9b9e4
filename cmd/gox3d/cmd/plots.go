package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dbsmedya/gox3d/internal/chart"
	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/database"
	"github.com/dbsmedya/gox3d/internal/dataset"
	"github.com/dbsmedya/gox3d/internal/logger"
	"github.com/dbsmedya/gox3d/internal/scale"
	"github.com/dbsmedya/gox3d/internal/scatter"
	"github.com/dbsmedya/gox3d/internal/scene"
	"github.com/dbsmedya/gox3d/internal/source"
)

func readTable(path string) (dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	t, err := dataset.DecodeTable(f)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return t, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// createOutput opens path for writing, creating parent directories. An empty
// path or "-" writes to the command output.
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{outputWriter}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, nil
}

func surfaceOptions(plot *config.PlotConfig) []chart.Option {
	d := plot.SurfaceDimensions()
	return []chart.Option{
		chart.WithSize(plot.Width, plot.Height),
		chart.WithDimensions(chart.Dimensions{X: d.X, Y: d.Y, Z: d.Z}),
		chart.WithColors(plot.Colors, scale.Interpolation(plot.Interpolate)),
		chart.WithValueDomain(plot.ValueDomain),
		chart.WithColorDomain(plot.ColorDomain),
		chart.WithQuickView(plot.Viewpoint),
		chart.WithDebug(plot.Debug),
	}
}

// renderSurface reads the plot's table and writes the surface page, or only
// the x3d element when sceneOnly is set.
func renderSurface(w io.Writer, title string, plot *config.PlotConfig, sceneOnly bool) error {
	t, err := readTable(plot.Input)
	if err != nil {
		return err
	}
	if plot.Rotate {
		if t, err = dataset.Rotate(t); err != nil {
			return fmt.Errorf("failed to rotate table: %w", err)
		}
	}

	sp, err := chart.NewSurfacePlot(surfaceOptions(plot)...)
	if err != nil {
		return fmt.Errorf("invalid surface options: %w", err)
	}
	x3d, err := sp.Render(t)
	if err != nil {
		return fmt.Errorf("failed to render surface: %w", err)
	}

	if sceneOnly {
		return scene.Encode(w, x3d, "  ")
	}
	return chart.Page{Title: title, Scene: x3d}.Render(w)
}

// openDatabase connects when any plot reads from MySQL and returns nil otherwise.
func openDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.Manager, error) {
	if !cfg.UsesDatabase() {
		return nil, nil
	}
	m := database.NewManager(&cfg.Database, log)
	if err := m.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return m, nil
}

// scatterPlot builds the plot and its loader for a configured scatter plot.
func scatterPlot(cfg *config.Config, name string, plot *config.PlotConfig, controls scatter.Controls, db *database.Manager) (*scatter.Plot, source.Loader, error) {
	opts := []scatter.Option{
		scatter.WithSize(plot.Width, plot.Height),
		scatter.WithClusters(plot.Clusters),
	}
	if l := cfg.GetPlotScatter(name).AxisLength; l > 0 {
		opts = append(opts, scatter.WithAxisLength(l))
	}
	p, err := scatter.NewPlot(cfg, controls, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("plot %q: %w", name, err)
	}

	var sqlDB *sql.DB
	if db != nil {
		sqlDB = db.DB
	}
	loader, err := source.NewLoader(plot, sqlDB)
	if err != nil {
		return nil, nil, fmt.Errorf("plot %q: %w", name, err)
	}
	return p, loader, nil
}

// loadScatter builds a scatter plot and draws one frame from its source.
func loadScatter(ctx context.Context, cfg *config.Config, name string, plot *config.PlotConfig, controls scatter.Controls, db *database.Manager) (*scatter.Plot, error) {
	p, loader, err := scatterPlot(cfg, name, plot, controls, db)
	if err != nil {
		return nil, err
	}
	frame, err := loader.Load(ctx, p.Columns())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", loader.Describe(), err)
	}
	p.Draw(frame)
	return p, nil
}

// scatterControls applies command-line axis overrides to a plot's controls.
func scatterControls(plot *config.PlotConfig, x, y, z, band string) scatter.Controls {
	c := scatter.ControlsFor(plot)
	if x != "" {
		c.X = x
	}
	if y != "" {
		c.Y = y
	}
	if z != "" {
		c.Z = z
	}
	if band != "" {
		c.Band = band
	}
	return c
}

func writeScatterPage(w io.Writer, title string, p *scatter.Plot) error {
	return chart.Page{Title: title, Scene: p.Root()}.Render(w)
}
