// Package component renders reusable X3D chart parts (axes, surfaces,
// viewpoints) into a scene graph.
package component

import (
	"fmt"
	"math"

	"github.com/dbsmedya/gox3d/internal/scale"
	"github.com/dbsmedya/gox3d/internal/scene"
)

// Direction is a scene axis.
type Direction string

const (
	X Direction = "x"
	Y Direction = "y"
	Z Direction = "z"
)

var directionVectors = map[Direction][3]float64{
	X: {1, 0, 0},
	Y: {0, 1, 0},
	Z: {0, 0, 1},
}

// Rotations that turn a y-aligned cylinder onto each axis.
var rotationVectors = map[Direction][4]float64{
	X: {1, 1, 0, math.Pi},
	Y: {0, 0, 0, 0},
	Z: {0, 1, 1, math.Pi},
}

// Vector returns the unit vector of d.
func (d Direction) Vector() ([3]float64, error) {
	v, ok := directionVectors[d]
	if !ok {
		return v, fmt.Errorf("unknown direction %q", d)
	}
	return v, nil
}

// Rotation returns the SFRotation aligning a cylinder with d.
func (d Direction) Rotation() ([4]float64, error) {
	v, ok := rotationVectors[d]
	if !ok {
		return v, fmt.Errorf("unknown direction %q", d)
	}
	return v, nil
}

func scaled(v [3]float64, k float64) string {
	return scene.Vec(v[0]*k, v[1]*k, v[2]*k)
}

func rotation(v [4]float64) string {
	return scene.Vec(v[0], v[1], v[2], v[3])
}

// Scale is what an axis needs from a scale: its output range and tick marks.
type Scale interface {
	Range() (float64, float64)
	AxisTicks() []scale.Tick
}

// solid appends appearance>material with the given diffuse color to shape.
func solid(shape *scene.Node, color string) *scene.Node {
	shape.AppendNew("appearance").AppendNew("material", "diffusecolor", color)
	return shape
}
