package scatter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/scale"
	"github.com/dbsmedya/gox3d/internal/scene"
)

// Datapoint states kept in the shape's data-state attribute.
const (
	StateClicked   = "clicked"
	StateUnclicked = "unclicked"
)

// ErrUnknownPoint is returned when a datapoint id is not in the scene.
var ErrUnknownPoint = errors.New("unknown datapoint")

var (
	colorBase      = scale.X3DColor(scale.MustParseColor("dodgerblue"))
	colorHighlight = scale.X3DColor(scale.MustParseColor("yellow"))
)

type cluster struct {
	until int
	color string
}

func parseClusters(cfgs []config.ClusterConfig) ([]cluster, error) {
	out := make([]cluster, 0, len(cfgs))
	for i, c := range cfgs {
		col, err := scale.ParseColor(c.Color)
		if err != nil {
			return nil, fmt.Errorf("cluster %d: %w", i, err)
		}
		out = append(out, cluster{until: c.Until, color: scale.X3DColor(col)})
	}
	return out, nil
}

// clusterColor returns the color of the first cluster covering row i.
func (p *Plot) clusterColor(i int) (string, bool) {
	for _, c := range p.clusters {
		if c.until == 0 || i < c.until {
			return c.color, true
		}
	}
	return "", false
}

func shapeOf(datapoint *scene.Node) *scene.Node {
	return datapoint.Child("shape")
}

func materialOf(shape *scene.Node) *scene.Node {
	if a := shape.Child("appearance"); a != nil {
		return a.Child("material")
	}
	return nil
}

// paint sets a datapoint's material color from its state: clicked points are
// highlighted, others take their cluster color when clusters are shown.
func (p *Plot) paint(datapoint *scene.Node, i int) {
	shape := shapeOf(datapoint)
	if shape == nil {
		return
	}
	m := materialOf(shape)
	if m == nil {
		return
	}

	color := colorBase
	if shape.AttrOr("data-state", StateUnclicked) == StateClicked {
		color = colorHighlight
	} else if p.clustered {
		if c, ok := p.clusterColor(i); ok {
			color = c
		}
	}
	m.SetAttr("diffusecolor", color)
}

// Toggle flips the clicked state of datapoint id and returns the new state.
func (p *Plot) Toggle(id int) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	shape := p.scene.ByID("shape-" + strconv.Itoa(id))
	if shape == nil {
		return "", fmt.Errorf("%w: %d", ErrUnknownPoint, id)
	}

	state := StateClicked
	if shape.AttrOr("data-state", StateUnclicked) == StateClicked {
		state = StateUnclicked
	}
	shape.SetAttr("data-state", state)
	p.paint(shape.Parent(), id)
	return state, nil
}

// ClearHighlight unclicks every datapoint, hides clusters and repaints.
func (p *Plot) ClearHighlight() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clustered = false
	p.eachDatapoint(func(n *scene.Node, i int) {
		if shape := shapeOf(n); shape != nil {
			shape.SetAttr("data-state", StateUnclicked)
		}
		p.paint(n, i)
	})
}

// ShowClusters colors datapoints by their index-range cluster. It is an error
// when no clusters are configured.
func (p *Plot) ShowClusters() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.clusters) == 0 {
		return errors.New("no clusters configured")
	}
	p.clustered = true
	p.eachDatapoint(p.paint)
	return nil
}

// Highlighted returns the ids of clicked datapoints in row order.
func (p *Plot) Highlighted() []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	var ids []int
	p.eachDatapoint(func(n *scene.Node, i int) {
		if shape := shapeOf(n); shape != nil && shape.AttrOr("data-state", "") == StateClicked {
			ids = append(ids, i)
		}
	})
	return ids
}

func (p *Plot) eachDatapoint(fn func(n *scene.Node, i int)) {
	for _, c := range p.scene.Children {
		if !c.HasClass(classDatapoint) {
			continue
		}
		i, err := strconv.Atoi(c.AttrOr(scene.AttrKey, ""))
		if err != nil {
			continue
		}
		fn(c, i)
	}
}
