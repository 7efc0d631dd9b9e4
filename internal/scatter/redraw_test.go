package scatter

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/source"
)

type loaderFunc func(ctx context.Context, columns []string) (*source.Frame, error)

func (f loaderFunc) Load(ctx context.Context, columns []string) (*source.Frame, error) {
	return f(ctx, columns)
}

func (f loaderFunc) Describe() string { return "test" }

func fastConfig() config.ScatterConfig {
	return config.ScatterConfig{RefreshMillis: 5, LoadTimeoutSeconds: 1, MaxInFlight: 2}
}

func TestRedrawer_Refresh(t *testing.T) {
	p := newPlot(t, DefaultControls())
	frame := readings(t, []float64{2000}, []float64{650}, []float64{593})

	var requested []string
	r := NewRedrawer(p, loaderFunc(func(_ context.Context, cols []string) (*source.Frame, error) {
		requested = cols
		return frame, nil
	}), fastConfig(), nil)

	applied, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, uint64(1), r.Applied())
	assert.Same(t, frame, p.Frame())
	assert.Equal(t, []string{"FWFLOW", "MW", "THRTEMP"}, requested)
}

func TestRedrawer_FailedLoadKeepsLastFrame(t *testing.T) {
	p := newPlot(t, DefaultControls())
	good := readings(t, []float64{2000}, []float64{650}, []float64{593})

	fail := false
	r := NewRedrawer(p, loaderFunc(func(context.Context, []string) (*source.Frame, error) {
		if fail {
			return nil, errors.New("csv unavailable")
		}
		return good, nil
	}), fastConfig(), nil)

	_, err := r.Refresh(context.Background())
	require.NoError(t, err)

	fail = true
	applied, err := r.Refresh(context.Background())
	require.Error(t, err)
	assert.False(t, applied)
	assert.Same(t, good, p.Frame())
	assert.Equal(t, uint64(1), r.Applied())
	assert.ErrorContains(t, r.LastError(), "csv unavailable")

	fail = false
	_, err = r.Refresh(context.Background())
	require.NoError(t, err)
	assert.NoError(t, r.LastError())
}

func TestRedrawer_StaleLoadDiscarded(t *testing.T) {
	p := newPlot(t, DefaultControls())
	older := readings(t, []float64{1600}, []float64{650}, []float64{590})
	newer := readings(t, []float64{1700, 1800}, []float64{700, 750}, []float64{591, 592})

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	r := NewRedrawer(p, loaderFunc(func(context.Context, []string) (*source.Frame, error) {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
			return older, nil
		}
		return newer, nil
	}), fastConfig(), nil)

	type result struct {
		applied bool
		err     error
	}
	slow := make(chan result, 1)
	go func() {
		applied, err := r.Refresh(context.Background())
		slow <- result{applied, err}
	}()

	<-entered
	applied, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)

	close(release)
	res := <-slow
	require.NoError(t, res.err)
	assert.False(t, res.applied)
	assert.Same(t, newer, p.Frame())
	assert.Equal(t, uint64(2), r.Applied())
}

func TestRedrawer_LoadTimeout(t *testing.T) {
	p := newPlot(t, DefaultControls())
	cfg := fastConfig()
	cfg.LoadTimeoutSeconds = 0.01

	r := NewRedrawer(p, loaderFunc(func(ctx context.Context, _ []string) (*source.Frame, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), cfg, nil)

	_, err := r.Refresh(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, p.Frame())
}

func TestRedrawer_Run(t *testing.T) {
	p := newPlot(t, DefaultControls())
	frame := readings(t, []float64{2000}, []float64{650}, []float64{593})

	var calls atomic.Int32
	r := NewRedrawer(p, loaderFunc(func(context.Context, []string) (*source.Frame, error) {
		calls.Add(1)
		return frame, nil
	}), fastConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, calls.Load(), "no loads while time lapse is off")

	assert.True(t, r.ToggleTimeLapse())
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	r.SetTimeLapse(false)
	assert.False(t, r.TimeLapse())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.Same(t, frame, p.Frame())
	assert.GreaterOrEqual(t, r.Applied(), uint64(1))
}

func TestRedrawer_RunSkipsTicksAtLimit(t *testing.T) {
	p := newPlot(t, DefaultControls())
	cfg := fastConfig()
	cfg.MaxInFlight = 1

	release := make(chan struct{})
	var calls atomic.Int32
	r := NewRedrawer(p, loaderFunc(func(ctx context.Context, _ []string) (*source.Frame, error) {
		calls.Add(1)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil, errors.New("released")
	}), cfg, nil)
	r.SetTimeLapse(true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	close(release)
	cancel()
	require.NoError(t, <-done)
}
