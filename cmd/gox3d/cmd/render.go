package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/database"
	"github.com/dbsmedya/gox3d/internal/lock"
	"github.com/dbsmedya/gox3d/internal/scatter"
)

var renderParallel int

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every configured plot to its output file",
	Long: `Render writes the page of every plot in the configuration to the plot's
output path. Plots render concurrently; one failing plot does not stop the
others and the command fails if any plot failed.

Plots read from MySQL render under an advisory lock named after the plot. A
plot whose lock is held by another gox3d process is skipped.

Example:
  gox3d render --config gox3d.yaml --parallel 4`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&renderParallel, "parallel", 4,
		"Maximum number of plots rendered at once")

	rootCmd.AddCommand(renderCmd)
}

type renderResult struct {
	name    string
	output  string
	skipped bool
	err     error
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	names := cfg.ListPlots()
	if len(names) == 0 {
		printWarn("no plots defined in %s", GetConfigFile())
		return nil
	}
	sort.Strings(names)

	ctx := context.Background()
	db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	var (
		mu      sync.Mutex
		results []renderResult
	)
	g := new(errgroup.Group)
	if renderParallel > 0 {
		g.SetLimit(renderParallel)
	}
	for _, name := range names {
		g.Go(func() error {
			plot, _ := cfg.GetPlot(name)
			r := renderResult{name: name, output: plot.Output}
			r.err = renderLocked(ctx, cfg, name, plot, db)
			switch {
			case errors.Is(r.err, lock.ErrLockTimeout):
				r.skipped, r.err = true, nil
				log.WithPlot(name).Warnw("render skipped, plot is locked", "lock", lock.PlotLockName(name))
			case r.err != nil:
				log.WithPlot(name).Errorw("render failed", "error", r.err)
			default:
				log.WithPlot(name).Infow("rendered", "output", plot.Output)
			}
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].name < results[j].name })
	failed := 0
	for _, r := range results {
		if r.skipped {
			printWarn("%s: skipped, another process is rendering it", r.name)
			continue
		}
		if r.err != nil {
			failed++
			printFail("%s: %v", r.name, r.err)
			continue
		}
		printOK("%s -> %s", r.name, r.output)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d plots failed to render", failed, len(results))
	}
	return nil
}

// renderLocked renders a plot, holding its advisory lock when the plot reads
// from MySQL.
func renderLocked(ctx context.Context, cfg *config.Config, name string, plot *config.PlotConfig, db *database.Manager) error {
	if db == nil || plot.SourceFormat() != "mysql" {
		return renderPlot(ctx, cfg, name, plot, db)
	}
	return lock.WithPlotLock(ctx, db.DB, name, func() error {
		return renderPlot(ctx, cfg, name, plot, db)
	})
}

func renderPlot(ctx context.Context, cfg *config.Config, name string, plot *config.PlotConfig, db *database.Manager) error {
	if plot.Output == "" {
		return fmt.Errorf("no output path configured")
	}
	out, err := createOutput(plot.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	switch plot.Type {
	case config.PlotTypeSurface:
		return renderSurface(out, name, plot, false)
	case config.PlotTypeScatter:
		p, err := loadScatter(ctx, cfg, name, plot, scatter.ControlsFor(plot), db)
		if err != nil {
			return err
		}
		return writeScatterPage(out, name, p)
	}
	return fmt.Errorf("unknown plot type %q", plot.Type)
}
