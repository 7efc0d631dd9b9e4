package scatter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"sync"

	"github.com/dbsmedya/gox3d/internal/component"
	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/scale"
	"github.com/dbsmedya/gox3d/internal/scene"
	"github.com/dbsmedya/gox3d/internal/source"
)

const (
	DefaultAxisLength = 10.0
	DefaultWidth      = 960
	DefaultHeight     = 600

	pointScale    = 0.1
	tickSize      = 0.1
	tickFontSize  = 0.5
	labelFontSize = 0.6

	classDatapoint = "datapoint"
)

var (
	colorAxisLine = scale.X3DColor(scale.MustParseColor("lightgray"))
	colorGridLine = scale.X3DColor(scale.MustParseColor("gray"))
	colorText     = scale.X3DColor(scale.MustParseColor("black"))
)

type axisSpec struct {
	name     string
	index    int
	ticks    int
	rotation [4]float64
	// grid lines are drawn on the base plane for x and z only
	grid         bool
	gridRotation [4]float64
}

var axes = [3]axisSpec{
	{name: "x", index: 0, ticks: 25, grid: true, gridRotation: [4]float64{0, 1, 0, -math.Pi / 2}},
	{name: "y", index: 1, ticks: 8, rotation: [4]float64{0, 0, 1, math.Pi / 2}},
	{name: "z", index: 2, ticks: 26, rotation: [4]float64{0, 1, 0, -math.Pi / 2}, grid: true},
}

// Plot is a persistent scatter scene. Axes and datapoints are reconciled in
// place on every Draw, so per-point state such as highlights survives redraws.
// All methods are safe for concurrent use.
type Plot struct {
	mu sync.Mutex

	cfg        *config.Config
	controls   Controls
	axisLength float64
	width      int
	height     int

	clusters  []cluster
	clustered bool

	root  *scene.Node
	scene *scene.Node
	frame *source.Frame
	stats scene.Stats
}

// Option configures a Plot.
type Option func(*Plot) error

// WithAxisLength sets the length of every axis in scene units.
func WithAxisLength(length float64) Option {
	return func(p *Plot) error {
		if length <= 0 {
			return fmt.Errorf("axis length must be positive, got %v", length)
		}
		p.axisLength = length
		return nil
	}
}

// WithSize sets the x3d element size in pixels.
func WithSize(width, height int) Option {
	return func(p *Plot) error {
		if width < 0 || height < 0 {
			return fmt.Errorf("invalid size %dx%d", width, height)
		}
		if width > 0 {
			p.width = width
		}
		if height > 0 {
			p.height = height
		}
		return nil
	}
}

// WithClusters sets the index-range cluster colors.
func WithClusters(clusters []config.ClusterConfig) Option {
	return func(p *Plot) error {
		parsed, err := parseClusters(clusters)
		if err != nil {
			return err
		}
		p.clusters = parsed
		return nil
	}
}

// NewPlot creates a scatter plot with empty data and draws its axes.
func NewPlot(cfg *config.Config, controls Controls, opts ...Option) (*Plot, error) {
	if err := controls.Validate(cfg); err != nil {
		return nil, err
	}

	p := &Plot{
		cfg:        cfg,
		controls:   controls,
		axisLength: DefaultAxisLength,
		width:      DefaultWidth,
		height:     DefaultHeight,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	p.root = scene.New("x3d",
		"width", strconv.Itoa(p.width)+"px",
		"height", strconv.Itoa(p.height)+"px",
		"showlog", "false",
		"showstat", "false",
	)
	p.scene = p.root.AppendNew("scene", scene.AttrClass, "d3X3domScatterPlot")

	l := p.axisLength
	component.OrthoViewpoint{
		CenterOfRotation: [3]float64{l / 2, l / 2, l / 2},
		FieldOfView:      [4]float64{-l / 2, -l / 2, 1.5 * l, 1.5 * l},
		Orientation:      [4]float64{-0.5, 1, 0.2, 1.12 * math.Pi / 4},
		Position:         [3]float64{0.8 * l, 0.4 * l, 1.5 * l},
	}.Render(p.scene)

	p.draw()
	return p, nil
}

// Controls returns the current axis and band selection.
func (p *Plot) Controls() Controls {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controls
}

// SetControls changes the axis and band selection and redraws the current frame.
func (p *Plot) SetControls(c Controls) error {
	if err := c.Validate(p.cfg); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.controls = c
	p.draw()
	return nil
}

// Columns returns the source columns the current controls read.
func (p *Plot) Columns() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controls.Columns(p.cfg)
}

// Frame returns the frame drawn last, nil before the first Draw.
func (p *Plot) Frame() *source.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// Draw replaces the data and reconciles the scene. The returned stats count
// datapoints entered, updated and removed.
func (p *Plot) Draw(frame *source.Frame) scene.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame = frame
	return p.draw()
}

// WriteTo encodes the x3d element.
func (p *Plot) WriteTo(w io.Writer) (int64, error) {
	p.mu.Lock()
	s := p.root.String()
	p.mu.Unlock()
	n, err := io.WriteString(w, s)
	return int64(n), err
}

// Root returns a snapshot copy of the x3d element.
func (p *Plot) Root() *scene.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.root.Clone()
}

func (p *Plot) draw() scene.Stats {
	domains := p.controls.Domains(p.cfg, p.frame)
	labels := [3]string{p.controls.X, p.controls.Y, p.controls.Z}

	var scales [3]*scale.Linear
	for i, ax := range axes {
		scales[i] = scale.NewLinear(domains[i][0], domains[i][1], 0, p.axisLength)
		p.drawAxis(ax, scales[i], labels[i])
	}
	p.stats = p.plotData(scales)
	return p.stats
}

func constVec(axisValue float64, axisIndex int) string {
	v := []float64{0, 0, 0}
	v[axisIndex] = axisValue
	return scene.Vec(v...)
}

func solidShape(parent *scene.Node, color string) *scene.Node {
	shape := parent.AppendNew("shape")
	shape.AppendNew("appearance").AppendNew("material", "diffusecolor", color)
	return shape
}

func lineShape(parent *scene.Node, color string, length float64) {
	shape := parent.AppendNew("shape")
	shape.AppendNew("appearance").AppendNew("material", "emissivecolor", color)
	shape.AppendNew("polyline2d", "linesegments", "0 0, "+scene.Num(length)+" 0")
}

func billboardText(parent *scene.Node, class, text string, size float64) {
	shape := solidShape(parent.AppendNew("billboard", "axisofrotation", "0 0 0"), colorText)
	t := shape.AppendNew("text", "solid", "true", "string", text)
	if class != "" {
		t.AddClass(class)
	}
	t.AppendNew("fontstyle", "size", scene.Num(size), "family", "SANS", "justify", "END MIDDLE")
}

// drawAxis creates the axis line and label once, then reconciles ticks and
// grid lines against the current scale.
func (p *Plot) drawAxis(ax axisSpec, s *scale.Linear, column string) {
	l := p.axisLength

	line := p.scene.Ensure("transform", ax.name+"Axis")
	if len(line.Children) == 0 {
		line.SetAttr("rotation", scene.Vec(ax.rotation[:]...))
		lineShape(line, colorAxisLine, l)
	}

	label := p.scene.Ensure("transform", ax.name+"AxisLabel")
	if len(label.Children) == 0 {
		label.SetAttr("translation", constVec(1.1*l, ax.index))
		billboardText(label, ax.name+"AxisLabelText", column, labelFontSize)
	}
	for _, t := range label.ByClass(ax.name + "AxisLabelText") {
		t.SetAttr("string", column)
	}

	ticks := s.Ticks(ax.ticks)
	keys := make([]string, len(ticks))
	for i, t := range ticks {
		keys[i] = scene.Num(t.Datum)
	}

	scene.Reconcile(p.scene, ax.name+"Tick", keys,
		func(string, int) *scene.Node {
			n := scene.New("transform")
			solidShape(n, colorText).AppendNew("box", "size", scene.Vec(tickSize, tickSize, tickSize))
			billboardText(n, "", "", tickFontSize)
			return n
		},
		func(n *scene.Node, _ string, i int) {
			n.SetAttr("translation", constVec(ticks[i].Value, ax.index))
			if t := n.Find(func(c *scene.Node) bool { return c.Tag == "text" }); t != nil {
				t.SetAttr("string", ticks[i].Label)
			}
		},
	)

	if !ax.grid {
		return
	}
	scene.Reconcile(p.scene, ax.name+"GridLine", keys,
		func(string, int) *scene.Node {
			n := scene.New("transform", "rotation", scene.Vec(ax.gridRotation[:]...))
			lineShape(n, colorGridLine, l)
			return n
		},
		func(n *scene.Node, _ string, i int) {
			n.SetAttr("translation", constVec(ticks[i].Value, ax.index))
		},
	)
}

// plotData reconciles one datapoint per frame row, keyed by row index. Rows
// with a missing coordinate or outside the band are hidden.
func (p *Plot) plotData(scales [3]*scale.Linear) scene.Stats {
	rows := 0
	if p.frame != nil {
		rows = p.frame.Len()
	}
	keys := make([]string, rows)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	cols := p.controls.Columns(p.cfg)

	return scene.Reconcile(p.scene, classDatapoint, keys,
		func(key string, _ int) *scene.Node {
			n := scene.New("transform", "scale", scene.Vec(pointScale, pointScale, pointScale))
			shape := n.AppendNew("shape",
				scene.AttrID, "shape-"+key,
				"data-state", StateUnclicked,
				"data-id", key,
			)
			shape.AppendNew("appearance").AppendNew("material",
				scene.AttrID, "material-"+key,
				"data-id", key,
				"ambientintensity", "1",
				"shininess", "1",
			)
			shape.AppendNew("sphere")
			return n
		},
		func(n *scene.Node, _ string, i int) {
			x := p.frame.Value(i, cols[0])
			y := p.frame.Value(i, cols[1])
			z := p.frame.Value(i, cols[2])

			if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) || !p.controls.InBand(p.cfg, y) {
				n.SetAttr("render", "false")
			} else {
				n.RemoveAttr("render")
				n.SetAttr("translation", scene.Vec(scales[0].Map(x), scales[1].Map(y), scales[2].Map(z)))
			}
			p.paint(n, i)
		},
	)
}
