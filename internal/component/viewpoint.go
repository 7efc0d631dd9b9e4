package component

import (
	"fmt"

	"github.com/dbsmedya/gox3d/internal/scene"
)

// Viewpoint is the camera of a perspective scene.
type Viewpoint struct {
	CenterOfRotation [3]float64
	Position         [3]float64
	Orientation      [4]float64
	FieldOfView      float64
}

// DefaultViewpoint is the camera used when no quick view is chosen.
func DefaultViewpoint() Viewpoint {
	return Viewpoint{
		Position:    [3]float64{150, 20, 200},
		Orientation: [4]float64{0, 1, 0, 0.8},
		FieldOfView: 0.8,
	}
}

// QuickView returns one of the preset cameras: left, side, top or dimetric.
// An empty name selects dimetric.
func QuickView(name string) (Viewpoint, error) {
	switch name {
	case "left":
		return Viewpoint{
			Position:    [3]float64{37.10119, 18.70484, 51.01594},
			Orientation: [4]float64{0.06724, 0.99767, -0.01148, 0.33908},
			FieldOfView: 1.0,
		}, nil
	case "side":
		return Viewpoint{
			CenterOfRotation: [3]float64{20, 0, 0},
			Position:         [3]float64{20, 20, 50},
			FieldOfView:      1.0,
		}, nil
	case "top":
		return Viewpoint{
			Position:    [3]float64{27.12955, 106.67181, 31.65828},
			Orientation: [4]float64{-0.86241, 0.37490, 0.34013, 1.60141},
			FieldOfView: 1.0,
		}, nil
	case "dimetric", "":
		return Viewpoint{
			Position:    [3]float64{80, 15, 80},
			Orientation: [4]float64{0, 1, 0, 0.8},
			FieldOfView: 0.8,
		}, nil
	}
	return Viewpoint{}, fmt.Errorf("unknown quick view %q", name)
}

// Render creates or updates the single viewpoint child of parent and binds it.
func (v Viewpoint) Render(parent *scene.Node) {
	n := parent.Ensure("viewpoint", "")
	n.SetAttr("centerofrotation", scene.Vec(v.CenterOfRotation[:]...))
	n.SetAttr("position", scene.Vec(v.Position[:]...))
	n.SetAttr("orientation", scene.Vec(v.Orientation[:]...))
	n.SetFloat("fieldofview", v.FieldOfView)
	n.SetAttr("set_bind", "true")
}

// OrthoViewpoint is an orthographic camera. FieldOfView is the visible
// window as min x, min y, max x, max y.
type OrthoViewpoint struct {
	CenterOfRotation [3]float64
	Position         [3]float64
	Orientation      [4]float64
	FieldOfView      [4]float64
}

// Render creates or updates the single orthoviewpoint child of parent.
func (v OrthoViewpoint) Render(parent *scene.Node) {
	n := parent.Ensure("orthoviewpoint", "")
	n.SetAttr("centerofrotation", scene.Vec(v.CenterOfRotation[:]...))
	n.SetAttr("fieldofview", scene.Vec(v.FieldOfView[:]...))
	n.SetAttr("orientation", scene.Vec(v.Orientation[:]...))
	n.SetAttr("position", scene.Vec(v.Position[:]...))
}
