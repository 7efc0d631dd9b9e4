package component

import (
	"fmt"

	"github.com/dbsmedya/gox3d/internal/scene"
)

// LabelPosition places tick labels before the axis or after the far end of
// the ticks.
type LabelPosition string

const (
	Proximal LabelPosition = "proximal"
	Distal   LabelPosition = "distal"
)

// Tick mark appearance.
const (
	TickColor        = "#d3d3d3"
	TickRadius       = 0.05
	DomainRadius     = 0.1
	LabelFontSize    = 1.3
	LabelColor       = "black"
	DefaultTickSize  = 1.0
	DefaultTickPad   = 1.5
	DefaultAxisColor = "black"
)

// Axis draws a domain line, ticks and billboard labels along one direction.
type Axis struct {
	Scale         Scale
	Direction     Direction
	TickDirection Direction
	TickSize      float64
	TickPadding   float64
	Color         string
	LabelPosition LabelPosition
	HideLabels    bool
}

// NewAxis returns an axis with default tick size, padding and color.
func NewAxis(s Scale, direction, tickDirection Direction) *Axis {
	return &Axis{
		Scale:         s,
		Direction:     direction,
		TickDirection: tickDirection,
		TickSize:      DefaultTickSize,
		TickPadding:   DefaultTickPad,
		Color:         DefaultAxisColor,
		LabelPosition: Proximal,
	}
}

func (a *Axis) labelInset() float64 {
	if a.LabelPosition == Distal {
		return 1
	}
	return -1
}

// Render reconciles the axis into parent. Calling it again with a changed
// scale moves existing ticks and labels, adds new ones and drops stale ones.
func (a *Axis) Render(parent *scene.Node) error {
	if a.Scale == nil {
		return fmt.Errorf("axis %s has no scale", a.Direction)
	}
	dir, err := a.Direction.Vector()
	if err != nil {
		return err
	}
	dirRot, _ := a.Direction.Rotation()
	tickDir, err := a.TickDirection.Vector()
	if err != nil {
		return err
	}
	tickRot, _ := a.TickDirection.Rotation()

	parent.AddClass("d3X3domAxis")
	r0, r1 := a.Scale.Range()
	ticks := a.Scale.AxisTicks()

	scene.Reconcile(parent, "domain", []string{"domain"},
		func(string, int) *scene.Node {
			t := scene.New("transform")
			solid(t.AppendNew("shape"), a.Color).AppendNew("cylinder", "radius", scene.Num(DomainRadius))
			return t
		},
		func(n *scene.Node, _ string, _ int) {
			n.SetAttr("rotation", rotation(dirRot))
			n.SetAttr("translation", scaled(dir, (r0+r1)/2))
			shape := n.Child("shape")
			shape.Child("appearance").Child("material").SetAttr("diffusecolor", a.Color)
			shape.Child("cylinder").SetFloat("height", r1-r0)
		})

	keys := make([]string, len(ticks))
	pos := make(map[string]float64, len(ticks))
	for i, t := range ticks {
		keys[i] = t.Label
		pos[t.Label] = t.Value
	}

	scene.Reconcile(parent, "tick", keys,
		func(string, int) *scene.Node {
			outer := scene.New("transform")
			inner := outer.AppendNew("transform")
			solid(inner.AppendNew("shape"), TickColor).AppendNew("cylinder", "radius", scene.Num(TickRadius))
			return outer
		},
		func(n *scene.Node, key string, _ int) {
			n.SetAttr("translation", scaled(dir, pos[key]))
			inner := n.Child("transform")
			inner.SetAttr("translation", scaled(tickDir, a.TickSize/2))
			inner.SetAttr("rotation", rotation(tickRot))
			inner.Child("shape").Child("cylinder").SetFloat("height", a.TickSize)
		})

	if a.HideLabels {
		scene.Reconcile(parent, "label", nil, nil, nil)
		return nil
	}

	inset := a.labelInset()
	var offset [3]float64
	for i, d := range tickDir {
		offset[i] = inset*d*a.TickPadding + (inset+1)/2*(r1-r0)*tickDir[i]
	}

	scene.Reconcile(parent, "label", keys,
		func(string, int) *scene.Node {
			outer := scene.New("transform")
			billboard := outer.AppendNew("transform").AppendNew("billboard", "axisofrotation", "0 0 0")
			text := solid(billboard.AppendNew("shape"), LabelColor).AppendNew("text")
			text.AppendNew("fontstyle",
				"size", scene.Num(LabelFontSize),
				"family", "SANS",
				"style", "BOLD",
				"justify", "MIDDLE")
			return outer
		},
		func(n *scene.Node, key string, _ int) {
			n.SetAttr("translation", scaled(dir, pos[key]))
			inner := n.Child("transform")
			inner.SetAttr("translation", scene.Vec(offset[0], offset[1], offset[2]))
			inner.Child("billboard").Child("shape").Child("text").SetAttr("string", key)
		})

	return nil
}
