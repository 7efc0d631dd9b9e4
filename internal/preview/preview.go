// Package preview renders a flat PNG projection of a scatter frame for quick
// inspection without a browser.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/scale"
	"github.com/dbsmedya/gox3d/internal/scatter"
	"github.com/dbsmedya/gox3d/internal/source"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 600
	dotWidth      = 3
)

// ErrNoPoints is returned by Project when no row falls inside the band.
var ErrNoPoints = errors.New("no points to plot")

// Options tunes the rendered image.
type Options struct {
	Width  int
	Height int
	Title  string
	// Highlight lists row indexes drawn in the highlight color.
	Highlight []int
}

// Projection is the X/Y side view of a scatter frame: the z column is dropped
// and rows outside the band or with missing values are skipped.
type Projection struct {
	XName, YName     string
	XRange, YRange   [2]float64
	XValues, YValues []float64
	XMarked, YMarked []float64
}

// Project computes the projection of frame under c.
func Project(cfg *config.Config, frame *source.Frame, c scatter.Controls, highlight []int) (*Projection, error) {
	if err := c.Validate(cfg); err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, ErrNoPoints
	}

	marked := make(map[int]bool, len(highlight))
	for _, i := range highlight {
		marked[i] = true
	}

	cols := c.Columns(cfg)
	domains := c.Domains(cfg, frame)
	p := &Projection{
		XName:  c.X,
		YName:  c.Y,
		XRange: widen(domains[0]),
		YRange: widen(domains[1]),
	}
	for i := 0; i < frame.Len(); i++ {
		x, y := frame.Value(i, cols[0]), frame.Value(i, cols[1])
		if math.IsNaN(x) || math.IsNaN(y) || !c.InBand(cfg, y) {
			continue
		}
		if marked[i] {
			p.XMarked = append(p.XMarked, x)
			p.YMarked = append(p.YMarked, y)
			continue
		}
		p.XValues = append(p.XValues, x)
		p.YValues = append(p.YValues, y)
	}
	if len(p.XValues)+len(p.XMarked) == 0 {
		return nil, ErrNoPoints
	}
	return p, nil
}

// RenderPNG writes the projection of frame as a PNG. A frame with nothing to
// plot produces a blank image carrying a notice instead of an error.
func RenderPNG(w io.Writer, cfg *config.Config, frame *source.Frame, c scatter.Controls, opts Options) error {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	p, err := Project(cfg, frame, c, opts.Highlight)
	if errors.Is(err, ErrNoPoints) {
		return png.Encode(w, notice(width, height, fmt.Sprintf("no %s readings in band %s", c.Y, c.Band)))
	}
	if err != nil {
		return err
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "readings",
			XValues: p.XValues,
			YValues: p.YValues,
			Style:   pointStyle(scale.MustParseColor("dodgerblue")),
		},
	}
	if len(p.XMarked) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "highlighted",
			XValues: p.XMarked,
			YValues: p.YMarked,
			Style:   pointStyle(scale.MustParseColor("gold")),
		})
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  p.XName,
			Range: &chart.ContinuousRange{Min: p.XRange[0], Max: p.XRange[1]},
		},
		YAxis: chart.YAxis{
			Name:  p.YName,
			Range: &chart.ContinuousRange{Min: p.YRange[0], Max: p.YRange[1]},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func pointStyle(c colorful.Color) chart.Style {
	r, g, b := c.RGB255()
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    dotWidth,
		DotColor:    drawing.Color{R: r, G: g, B: b, A: 255},
	}
}

// widen opens a zero-width domain, which the chart cannot lay out.
func widen(d [2]float64) [2]float64 {
	if d[0] == d[1] {
		return [2]float64{d[0] - 1, d[1] + 1}
	}
	return d
}

func notice(width, height int, text string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.Gray{Y: 96}), Face: basicfont.Face7x13}
	tw := d.MeasureString(text).Ceil()
	x := (width - tw) / 2
	if x < 0 {
		x = 0
	}
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(height / 2)}
	d.DrawString(text)
	return img
}
