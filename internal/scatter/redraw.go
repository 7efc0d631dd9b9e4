package scatter

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/logger"
	"github.com/dbsmedya/gox3d/internal/source"
)

const (
	DefaultRefresh     = 900 * time.Millisecond
	DefaultLoadTimeout = 5 * time.Second
	DefaultMaxInFlight = 2
)

// Redrawer reloads the plot's frame on a ticker while time lapse is on.
// Every load carries a generation number and a finished load is applied only
// when it is newer than the last applied one. A failed load leaves the last
// good frame in place.
type Redrawer struct {
	plot   *Plot
	loader source.Loader
	log    *logger.Logger

	interval time.Duration
	timeout  time.Duration
	loads    *errgroup.Group

	generation atomic.Uint64
	timeLapse  atomic.Bool

	mu      sync.Mutex
	applied uint64
	lastErr error
}

// NewRedrawer creates a redraw loop for plot reading from loader.
func NewRedrawer(plot *Plot, loader source.Loader, cfg config.ScatterConfig, log *logger.Logger) *Redrawer {
	if log == nil {
		log = logger.NewNop()
	}

	r := &Redrawer{
		plot:     plot,
		loader:   loader,
		log:      log.WithSource(loader.Describe()),
		interval: DefaultRefresh,
		timeout:  DefaultLoadTimeout,
		loads:    new(errgroup.Group),
	}
	if cfg.RefreshMillis > 0 {
		r.interval = time.Duration(cfg.RefreshMillis) * time.Millisecond
	}
	if cfg.LoadTimeoutSeconds > 0 {
		r.timeout = time.Duration(cfg.LoadTimeoutSeconds * float64(time.Second))
	}
	limit := DefaultMaxInFlight
	if cfg.MaxInFlight > 0 {
		limit = cfg.MaxInFlight
	}
	r.loads.SetLimit(limit)
	return r
}

// SetTimeLapse turns periodic reloading on or off.
func (r *Redrawer) SetTimeLapse(on bool) {
	r.timeLapse.Store(on)
}

// ToggleTimeLapse flips periodic reloading and returns the new setting.
func (r *Redrawer) ToggleTimeLapse() bool {
	for {
		cur := r.timeLapse.Load()
		if r.timeLapse.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// TimeLapse reports whether periodic reloading is on.
func (r *Redrawer) TimeLapse() bool {
	return r.timeLapse.Load()
}

// Applied returns the generation of the frame currently drawn.
func (r *Redrawer) Applied() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applied
}

// LastError returns the error of the most recent failed load, nil after a
// successful one.
func (r *Redrawer) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Refresh loads and draws a frame synchronously. It reports whether the frame
// was applied; a load overtaken by a newer one is discarded.
func (r *Redrawer) Refresh(ctx context.Context) (bool, error) {
	return r.load(ctx, r.generation.Add(1))
}

// Run ticks until ctx is done. Each tick with time lapse on starts a load
// unless the in-flight limit is reached, in which case the tick is skipped.
// Run waits for in-flight loads before returning.
func (r *Redrawer) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Infow("redraw loop started", "interval", r.interval, "timeout", r.timeout)
	for {
		select {
		case <-ctx.Done():
			_ = r.loads.Wait()
			r.log.Infow("redraw loop stopped", "applied", r.Applied())
			return nil
		case <-ticker.C:
			if !r.timeLapse.Load() {
				continue
			}
			gen := r.generation.Add(1)
			started := r.loads.TryGo(func() error {
				_, _ = r.load(ctx, gen)
				return nil
			})
			if !started {
				r.log.WithGeneration(gen).Debugw("tick skipped, loads in flight")
			}
		}
	}
}

func (r *Redrawer) load(ctx context.Context, gen uint64) (bool, error) {
	log := r.log.WithGeneration(gen)

	loadCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	frame, err := r.loader.Load(loadCtx, r.plot.Columns())
	if err != nil {
		err = fmt.Errorf("load generation %d: %w", gen, err)
		r.mu.Lock()
		r.lastErr = err
		r.mu.Unlock()
		log.Warnw("load failed, keeping last frame", "error", err)
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen <= r.applied {
		log.Debugw("stale frame discarded", "applied", r.applied)
		return false, nil
	}
	r.applied = gen
	r.lastErr = nil
	stats := r.plot.Draw(frame)
	log.Debugw("frame drawn",
		"rows", frame.Len(),
		"entered", stats.Entered,
		"updated", stats.Updated,
		"exited", stats.Exited,
		"duration", time.Since(start),
	)
	return true, nil
}
