package preview

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/scatter"
	"github.com/dbsmedya/gox3d/internal/source"
)

func frame(t *testing.T) *source.Frame {
	t.Helper()
	f, err := source.NewFrame([]string{"FWFLOW", "MW", "THRTEMP"}, map[string][]float64{
		"FWFLOW":  {1600, 1700, 1800, 1900},
		"MW":      {650, 750, math.NaN(), 950},
		"THRTEMP": {590, 591, 592, 593},
	})
	require.NoError(t, err)
	return f
}

func TestProject(t *testing.T) {
	cfg := config.DefaultConfig()

	tests := []struct {
		name     string
		controls scatter.Controls
		mark     []int
		xs, ys   []float64
		marked   []float64
		yRange   [2]float64
	}{
		{
			name:     "all bands",
			controls: scatter.DefaultControls(),
			xs:       []float64{1600, 1700, 1900},
			ys:       []float64{650, 750, 950},
			yRange:   [2]float64{600, 1000},
		},
		{
			name:     "band filters rows",
			controls: scatter.Controls{X: "FWFLOW", Y: "MW", Z: "THRTEMP", Band: "B7"},
			xs:       []float64{1700},
			ys:       []float64{750},
			yRange:   [2]float64{700, 800},
		},
		{
			name:     "highlighted rows split out",
			controls: scatter.DefaultControls(),
			mark:     []int{1, 2},
			xs:       []float64{1600, 1900},
			ys:       []float64{650, 950},
			marked:   []float64{1700},
			yRange:   [2]float64{600, 1000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Project(cfg, frame(t), tt.controls, tt.mark)
			require.NoError(t, err)
			assert.Equal(t, tt.xs, p.XValues)
			assert.Equal(t, tt.ys, p.YValues)
			assert.Equal(t, tt.marked, p.XMarked)
			assert.Equal(t, tt.yRange, p.YRange)
			assert.Equal(t, "FWFLOW", p.XName)
		})
	}
}

func TestProjectNoPoints(t *testing.T) {
	cfg := config.DefaultConfig()
	c := scatter.Controls{X: "FWFLOW", Y: "MW", Z: "THRTEMP", Band: "B8"}

	_, err := Project(cfg, frame(t), c, nil)
	assert.ErrorIs(t, err, ErrNoPoints)

	_, err = Project(cfg, nil, scatter.DefaultControls(), nil)
	assert.ErrorIs(t, err, ErrNoPoints)

	_, err = Project(cfg, frame(t), scatter.Controls{X: "FWFLOW"}, nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPoints)
}

func TestRenderPNG(t *testing.T) {
	cfg := config.DefaultConfig()

	tests := []struct {
		name     string
		controls scatter.Controls
		opts     Options
		w, h     int
	}{
		{"defaults", scatter.DefaultControls(), Options{Title: "MW vs FWFLOW", Highlight: []int{0}}, DefaultWidth, DefaultHeight},
		{"sized", scatter.DefaultControls(), Options{Width: 400, Height: 300}, 400, 300},
		{"empty band", scatter.Controls{X: "FWFLOW", Y: "MW", Z: "THRTEMP", Band: "B8"}, Options{Width: 320, Height: 200}, 320, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderPNG(&buf, cfg, frame(t), tt.controls, tt.opts))

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.w, img.Bounds().Dx())
			assert.Equal(t, tt.h, img.Bounds().Dy())
		})
	}
}

func TestWiden(t *testing.T) {
	assert.Equal(t, [2]float64{4, 6}, widen([2]float64{5, 5}))
	assert.Equal(t, [2]float64{0, 1}, widen([2]float64{0, 1}))
}
