// Package server serves an interactive scatter plot over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/gox3d/internal/chart"
	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/logger"
	"github.com/dbsmedya/gox3d/internal/preview"
	"github.com/dbsmedya/gox3d/internal/scatter"
)

const shutdownTimeout = 5 * time.Second

// Server exposes one scatter plot and its redraw loop.
type Server struct {
	cfg      *config.Config
	title    string
	plot     *scatter.Plot
	redrawer *scatter.Redrawer
	log      *logger.Logger
	refresh  time.Duration
	server   *http.Server
}

// State is the JSON view of the plot returned by the mutating endpoints.
type State struct {
	Controls    scatter.Controls `json:"controls"`
	TimeLapse   bool             `json:"time_lapse"`
	Generation  uint64           `json:"generation"`
	Rows        int              `json:"rows"`
	Highlighted []int            `json:"highlighted"`
	LastError   string           `json:"last_error,omitempty"`
}

// New creates a server for plot. addr may be empty when only Handler is used.
func New(cfg *config.Config, title string, plot *scatter.Plot, redrawer *scatter.Redrawer, log *logger.Logger, addr string) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		title:    title,
		plot:     plot,
		redrawer: redrawer,
		log:      log,
		refresh:  scatter.DefaultRefresh,
	}
	if cfg.Scatter.RefreshMillis > 0 {
		s.refresh = time.Duration(cfg.Scatter.RefreshMillis) * time.Millisecond
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /scene", s.handleScene)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("GET /preview.png", s.handlePreview)
	mux.HandleFunc("POST /controls", s.handleControls)
	mux.HandleFunc("POST /points/{id}/toggle", s.handleToggle)
	mux.HandleFunc("POST /highlight/clear", s.handleClear)
	mux.HandleFunc("POST /clusters", s.handleClusters)
	mux.HandleFunc("POST /timelapse", s.handleTimeLapse)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Run serves HTTP and runs the redraw loop until ctx is done, then shuts the
// listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Infow("http server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.redrawer.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.log.Warnw("http server shutdown failed, closing", "error", err)
			return s.server.Close()
		}
		s.log.Infow("http server stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) state() State {
	st := State{
		Controls:    s.plot.Controls(),
		TimeLapse:   s.redrawer.TimeLapse(),
		Generation:  s.redrawer.Applied(),
		Highlighted: s.plot.Highlighted(),
	}
	if st.Highlighted == nil {
		st.Highlighted = []int{}
	}
	if f := s.plot.Frame(); f != nil {
		st.Rows = f.Len()
	}
	if err := s.redrawer.LastError(); err != nil {
		st.LastError = err.Error()
	}
	return st
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var scene bytes.Buffer
	if _, err := s.plot.WriteTo(&scene); err != nil {
		http.Error(w, "Error encoding scene: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:         s.title,
		Script:        chart.X3DOMScript,
		Stylesheet:    chart.X3DOMStylesheet,
		Scene:         template.HTML(scene.String()),
		Controls:      s.plot.Controls(),
		Columns:       s.cfg.DomainColumns(),
		Bands:         s.cfg.BandNames(),
		RefreshMillis: s.refresh.Milliseconds(),
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		http.Error(w, "Error executing template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := s.plot.WriteTo(w); err != nil {
		s.log.Warnw("scene write failed", "error", err)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := preview.RenderPNG(&buf, s.cfg, s.plot.Frame(), s.plot.Controls(), preview.Options{
		Title:     s.title,
		Highlight: s.plot.Highlighted(),
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = buf.WriteTo(w)
}

// handleControls merges the posted fields into the current controls and
// reloads the frame so the new columns are read.
func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	var patch scatter.Controls
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid controls: "+err.Error())
		return
	}

	c := s.plot.Controls()
	if patch.X != "" {
		c.X = patch.X
	}
	if patch.Y != "" {
		c.Y = patch.Y
	}
	if patch.Z != "" {
		c.Z = patch.Z
	}
	if patch.Band != "" {
		c.Band = patch.Band
	}
	if err := s.plot.SetControls(c); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Infow("controls changed", "x", c.X, "y", c.Y, "z", c.Z, "band", c.Band)

	if _, err := s.redrawer.Refresh(r.Context()); err != nil {
		s.log.Warnw("reload after controls change failed", "error", err)
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid point id")
		return
	}
	state, err := s.plot.Toggle(id)
	if errors.Is(err, scatter.ErrUnknownPoint) {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "state": state})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.plot.ClearHighlight()
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	if err := s.plot.ShowClusters(); err != nil {
		writeJSONError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

// handleTimeLapse toggles the redraw gate, or sets it when ?on= is given.
func (s *Server) handleTimeLapse(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("on"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid on value")
			return
		}
		s.redrawer.SetTimeLapse(on)
	} else {
		s.redrawer.ToggleTimeLapse()
	}
	s.log.Infow("time lapse", "on", s.redrawer.TimeLapse())
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
