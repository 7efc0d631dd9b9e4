// Package chart assembles components into complete X3D charts and wraps them
// in HTML pages.
package chart

import (
	"fmt"
	"strconv"

	"github.com/dbsmedya/gox3d/internal/component"
	"github.com/dbsmedya/gox3d/internal/dataset"
	"github.com/dbsmedya/gox3d/internal/scale"
	"github.com/dbsmedya/gox3d/internal/scene"
)

// Dimensions is the size of the plot volume in scene units.
type Dimensions struct {
	X, Y, Z float64
}

// Surface plot defaults.
var (
	DefaultWidth       = 1300
	DefaultHeight      = 500
	DefaultDimensions  = Dimensions{X: 80, Y: 40, Z: 160}
	DefaultColors      = []string{"rgb(0,0,255)", "rgb(255,0,0)"}
	DefaultValueDomain = [2]float64{600, 950}
	DefaultColorDomain = [2]float64{600, 950}
)

// SurfacePlot draws a multi-series table as a colored surface framed by a
// three plane axis. The same plot can render successive tables; the scene is
// reused and reconciled.
type SurfacePlot struct {
	width       int
	height      int
	dimensions  Dimensions
	colors      []string
	interp      scale.Interpolation
	valueDomain [2]float64
	colorDomain [2]float64
	viewpoint   component.Viewpoint
	debug       bool
	summaryOpts []dataset.Option

	x3d     *scene.Node
	summary *dataset.Summary
}

// Option configures a SurfacePlot.
type Option func(*SurfacePlot) error

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(p *SurfacePlot) error {
		if width > 0 {
			p.width = width
		}
		if height > 0 {
			p.height = height
		}
		return nil
	}
}

// WithDimensions sets the plot volume. Non-positive values keep the default.
func WithDimensions(d Dimensions) Option {
	return func(p *SurfacePlot) error {
		if d.X > 0 && d.Y > 0 && d.Z > 0 {
			p.dimensions = d
		}
		return nil
	}
}

// WithColors sets the color ramp and its interpolation.
func WithColors(colors []string, interp scale.Interpolation) Option {
	return func(p *SurfacePlot) error {
		if len(colors) > 0 {
			p.colors = colors
		}
		if interp != "" {
			p.interp = interp
		}
		return nil
	}
}

// WithValueDomain fixes the y axis domain. An empty slice keeps the default.
func WithValueDomain(d []float64) Option {
	return func(p *SurfacePlot) error {
		return setDomain(&p.valueDomain, d, "value")
	}
}

// WithColorDomain sets the values mapped to the first and last color.
func WithColorDomain(d []float64) Option {
	return func(p *SurfacePlot) error {
		return setDomain(&p.colorDomain, d, "color")
	}
}

// WithQuickView selects a preset camera.
func WithQuickView(name string) Option {
	return func(p *SurfacePlot) error {
		if name == "" {
			return nil
		}
		vp, err := component.QuickView(name)
		if err != nil {
			return err
		}
		p.viewpoint = vp
		return nil
	}
}

// WithDebug turns on the x3dom log and statistics overlays.
func WithDebug(debug bool) Option {
	return func(p *SurfacePlot) error {
		p.debug = debug
		return nil
	}
}

// WithSummaryOptions passes options to dataset.Summarize.
func WithSummaryOptions(opts ...dataset.Option) Option {
	return func(p *SurfacePlot) error {
		p.summaryOpts = append(p.summaryOpts, opts...)
		return nil
	}
}

func setDomain(dst *[2]float64, d []float64, name string) error {
	if len(d) == 0 {
		return nil
	}
	if len(d) != 2 || d[1] <= d[0] {
		return fmt.Errorf("%s domain must be two increasing numbers, got %v", name, d)
	}
	*dst = [2]float64{d[0], d[1]}
	return nil
}

// NewSurfacePlot creates a surface plot.
func NewSurfacePlot(opts ...Option) (*SurfacePlot, error) {
	p := &SurfacePlot{
		width:       DefaultWidth,
		height:      DefaultHeight,
		dimensions:  DefaultDimensions,
		colors:      DefaultColors,
		interp:      scale.InterpolateRGB,
		valueDomain: DefaultValueDomain,
		colorDomain: DefaultColorDomain,
		viewpoint:   component.DefaultViewpoint(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Summary returns the summary computed by the last successful Render.
func (p *SurfacePlot) Summary() *dataset.Summary {
	return p.summary
}

// Render summarizes t once, rebuilds the scales and reconciles the x3d
// element. It returns the root x3d node, which is the same node on every call.
func (p *SurfacePlot) Render(t dataset.Table) (*scene.Node, error) {
	summary, err := dataset.Summarize(t, p.summaryOpts...)
	if err != nil {
		return nil, err
	}
	if summary.DataType != dataset.MultiSeries {
		return nil, fmt.Errorf("%w: surface plot needs a multi-series table", dataset.ErrInvalidTableShape)
	}

	d := p.dimensions
	xScale := scale.NewPoint(summary.RowKeys, 0, d.X)
	yScale := scale.NewLinear(p.valueDomain[0], p.valueDomain[1], 0, d.Y).Nice(scale.DefaultTickCount)
	zScale := scale.NewPoint(summary.ColumnKeys, 0, d.Z)
	colorScale, err := scale.NewColorFromStrings(p.colorDomain[0], p.colorDomain[1], p.colors, p.interp)
	if err != nil {
		return nil, err
	}

	if p.x3d == nil {
		p.x3d = scene.New("x3d")
		p.x3d.AppendNew("scene")
	}
	p.x3d.SetAttr("width", strconv.Itoa(p.width)+"px")
	p.x3d.SetAttr("height", strconv.Itoa(p.height)+"px")
	p.x3d.SetAttr("showlog", strconv.FormatBool(p.debug))
	p.x3d.SetAttr("showstat", strconv.FormatBool(p.debug))

	root := p.x3d.Child("scene")
	root.AddClass("d3X3domSurfacePlot")

	vp := p.viewpoint
	vp.CenterOfRotation = [3]float64{d.X / 2, d.Y / 2, d.Z / 2}
	vp.Render(root)

	axis := &component.AxisThreePlane{X: xScale, Y: yScale, Z: zScale, LabelPosition: component.Proximal}
	if err := axis.Render(root.Ensure("group", "axis")); err != nil {
		return nil, err
	}

	surface := &component.Surface{X: xScale, Y: yScale, Z: zScale, Color: colorScale}
	if err := surface.Render(root.Ensure("group", "surface"), t); err != nil {
		return nil, err
	}

	p.summary = summary
	return p.x3d, nil
}
