package component

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dbsmedya/gox3d/internal/dataset"
	"github.com/dbsmedya/gox3d/internal/scale"
	"github.com/dbsmedya/gox3d/internal/scene"
)

// Surface draws a rectangular multi-series table as a colored indexed face
// set. Rows run along x, columns along z and values along y.
type Surface struct {
	X     *scale.Point
	Y     *scale.Linear
	Z     *scale.Point
	Color *scale.Color
}

// SurfaceGeometry is the flattened face set of a surface.
type SurfaceGeometry struct {
	Points     [][]float64
	CoordIndex []int
	Colors     []string
}

// Geometry computes points, face indices and vertex colors for t.
func (s *Surface) Geometry(t dataset.Table) (*SurfaceGeometry, error) {
	if s.X == nil || s.Y == nil || s.Z == nil || s.Color == nil {
		return nil, fmt.Errorf("surface needs x, y, z and color scales")
	}
	if t.Kind() != dataset.MultiSeries {
		return nil, fmt.Errorf("%w: surface needs a multi-series table", dataset.ErrInvalidTableShape)
	}
	if !t.IsRectangular() || t.Len() == 0 {
		return nil, fmt.Errorf("%w: surface needs the same number of records in every row", dataset.ErrInvalidTableShape)
	}

	series := t.Series()
	ny := len(series)
	nx := len(series[0].Values)

	g := &SurfaceGeometry{}
	for _, row := range series {
		x, ok := s.X.Map(row.Key)
		if !ok {
			return nil, fmt.Errorf("row %q is not in the x scale", row.Key)
		}
		for _, r := range row.Values {
			z, ok := s.Z.Map(r.Key)
			if !ok {
				return nil, fmt.Errorf("column %q is not in the z scale", r.Key)
			}
			g.Points = append(g.Points, []float64{x, s.Y.Map(r.Value), z})
			g.Colors = append(g.Colors, s.Color.X3D(r.Value))
		}
	}

	// Front faces first, then the same quads wound the other way.
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			start := i + j*nx
			g.CoordIndex = append(g.CoordIndex, start, start+nx, start+nx+1, start+1, start, -1)
		}
	}
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			start := i + j*nx
			g.CoordIndex = append(g.CoordIndex, start, start+1, start+nx+1, start+nx, start, -1)
		}
	}

	return g, nil
}

// Render reconciles the surface shape into parent.
func (s *Surface) Render(parent *scene.Node, t dataset.Table) error {
	g, err := s.Geometry(t)
	if err != nil {
		return err
	}
	parent.AddClass("d3X3domSurface")

	scene.Reconcile(parent, "surface", []string{"surface"},
		func(string, int) *scene.Node {
			shape := scene.New("shape")
			faces := shape.AppendNew("indexedfaceset")
			faces.AppendNew("coordinate")
			faces.AppendNew("color")
			return shape
		},
		func(n *scene.Node, _ string, _ int) {
			faces := n.Child("indexedfaceset")
			faces.SetAttr("coordindex", joinInts(g.CoordIndex))
			faces.Child("coordinate").SetAttr("point", scene.Join2D(g.Points))
			faces.Child("color").SetAttr("color", strings.Join(g.Colors, " "))
		})
	return nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}
