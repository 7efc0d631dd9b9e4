package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gox3d/internal/database"
	"github.com/dbsmedya/gox3d/internal/scatter"
	"github.com/dbsmedya/gox3d/internal/server"
)

var (
	servePlot      string
	serveAddr      string
	serveTimeLapse bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an interactive scatter plot",
	Long: `Serve starts an HTTP server with an interactive page for a scatter plot:
axis and band selects, point highlighting, cluster coloring, and a time lapse
toggle that reloads the source on a fixed interval.

The server stops gracefully on SIGINT or SIGTERM, waiting for in-flight loads.

Example:
  gox3d serve --plot plant --addr :8080 --time-lapse`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePlot, "plot", "p", "",
		"Scatter plot name from configuration file (required)")
	serveCmd.MarkFlagRequired("plot")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"Listen address (default: server.addr from config)")
	serveCmd.Flags().BoolVar(&serveTimeLapse, "time-lapse", false,
		"Start with periodic reloading on")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	plot, err := scatterPlotConfig(cfg, servePlot)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()
	plotLog := log.WithPlot(servePlot)

	ctx, cancel := database.SetupSignalHandler(context.Background(), func(sig os.Signal) {
		plotLog.Warnw("received shutdown signal, stopping", "signal", sig.String())
	})
	defer cancel()

	db, err := openDatabase(ctx, cfg, plotLog)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	p, loader, err := scatterPlot(cfg, servePlot, plot, scatter.ControlsFor(plot), db)
	if err != nil {
		return err
	}
	redrawer := scatter.NewRedrawer(p, loader, cfg.GetPlotScatter(servePlot), plotLog)
	if _, err := redrawer.Refresh(ctx); err != nil {
		plotLog.Warnw("initial load failed, serving empty plot", "error", err)
	}
	redrawer.SetTimeLapse(serveTimeLapse)

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	srv := server.New(cfg, servePlot, p, redrawer, plotLog, addr)
	printOK("serving %s on http://%s", servePlot, displayAddr(addr))
	return srv.Run(ctx)
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
