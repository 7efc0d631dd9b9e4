package component

import (
	"fmt"

	"github.com/dbsmedya/gox3d/internal/scene"
)

// AxisThreePlane draws four axes framing a 3D plot: x and y along the z
// plane, y again along the x plane without labels, and z along the x plane.
type AxisThreePlane struct {
	X, Y, Z       Scale
	LabelPosition LabelPosition
}

// Plane group names, in render order.
var planeLayers = []string{"xzAxis", "yzAxis", "yxAxis", "zxAxis"}

// Render reconciles the four axes into layer groups under parent.
func (p *AxisThreePlane) Render(parent *scene.Node) error {
	if p.X == nil || p.Y == nil || p.Z == nil {
		return fmt.Errorf("three plane axis needs x, y and z scales")
	}
	parent.AddClass("d3X3domAxisThreePlane")

	x0, x1 := p.X.Range()
	z0, z1 := p.Z.Range()
	pos := p.LabelPosition
	if pos == "" {
		pos = Proximal
	}

	axes := map[string]*Axis{
		"xzAxis": {Scale: p.X, Direction: X, TickDirection: Z, TickSize: z1 - z0, Color: "blue"},
		"yzAxis": {Scale: p.Y, Direction: Y, TickDirection: Z, TickSize: z1 - z0, Color: "red"},
		"yxAxis": {Scale: p.Y, Direction: Y, TickDirection: X, TickSize: x1 - x0, Color: "red", HideLabels: true},
		"zxAxis": {Scale: p.Z, Direction: Z, TickDirection: X, TickSize: x1 - x0, Color: "black"},
	}

	for _, layer := range planeLayers {
		axis := axes[layer]
		axis.TickPadding = DefaultTickPad
		axis.LabelPosition = pos
		if err := axis.Render(parent.Ensure("group", layer)); err != nil {
			return fmt.Errorf("%s: %w", layer, err)
		}
	}
	return nil
}
