// Package scatter drives interactive 3D scatter plots of plant readings: it
// maps user-selected columns onto three fixed axes, filters by value band,
// tracks point highlights and periodically reloads the data.
package scatter

import (
	"fmt"

	"github.com/dbsmedya/gox3d/internal/config"
	"github.com/dbsmedya/gox3d/internal/dataset"
	"github.com/dbsmedya/gox3d/internal/scale"
	"github.com/dbsmedya/gox3d/internal/source"
	"github.com/dbsmedya/gox3d/internal/sqlutil"
)

// Controls select the columns shown on each axis and the band filtering Y.
type Controls struct {
	X    string `json:"x"`
	Y    string `json:"y"`
	Z    string `json:"z"`
	Band string `json:"band"`
}

// DefaultControls are the axes the plant page opens with.
func DefaultControls() Controls {
	return Controls{X: "FWFLOW", Y: "MW", Z: "THRTEMP", Band: AllBand}
}

// ControlsFor returns the controls configured on a plot, defaults filling gaps.
func ControlsFor(plot *config.PlotConfig) Controls {
	c := DefaultControls()
	if plot.X != "" {
		c.X = plot.X
	}
	if plot.Y != "" {
		c.Y = plot.Y
	}
	if plot.Z != "" {
		c.Z = plot.Z
	}
	if plot.Band != "" {
		c.Band = plot.Band
	}
	return c
}

// Validate checks that every axis names a plain column and the band exists.
func (c Controls) Validate(cfg *config.Config) error {
	for _, axis := range []struct{ name, column string }{{"x", c.X}, {"y", c.Y}, {"z", c.Z}} {
		if axis.column == "" {
			return fmt.Errorf("%s column is required", axis.name)
		}
		if !sqlutil.IsValidIdentifier(cfg.SourceColumn(axis.column)) {
			return fmt.Errorf("%s column %q is not a valid column name", axis.name, axis.column)
		}
	}
	if c.Band != "" {
		if _, ok := cfg.Band(c.Band); !ok {
			return fmt.Errorf("band %q is not defined", c.Band)
		}
	}
	return nil
}

// Columns returns the source columns the controls read, in x, y, z order.
func (c Controls) Columns(cfg *config.Config) []string {
	return []string{cfg.SourceColumn(c.X), cfg.SourceColumn(c.Y), cfg.SourceColumn(c.Z)}
}

// Domains resolves the x, y and z domains. Configured column domains win;
// the band sets the y domain; anything else falls back to the niced frame extent.
func (c Controls) Domains(cfg *config.Config, frame *source.Frame) [3][2]float64 {
	var extent map[string][2]float64
	if frame != nil {
		cols := c.Columns(cfg)
		if t, err := frame.Table(cols[0], cols[1], cols[2]); err == nil {
			if s, err := dataset.Summarize(t); err == nil {
				extent = s.CoordinatesExtent
			}
		}
	}

	resolve := func(column, coord string) [2]float64 {
		if d, ok := cfg.Domain(column); ok {
			return [2]float64{d.Min, d.Max}
		}
		if e, ok := extent[coord]; ok {
			lo, hi := scale.NewLinear(e[0], e[1], 0, 1).Nice(scale.DefaultTickCount).Domain()
			return [2]float64{lo, hi}
		}
		return [2]float64{0, 1}
	}

	out := [3][2]float64{resolve(c.X, "x"), resolve(c.Y, "y"), resolve(c.Z, "z")}
	if b, ok := cfg.Band(c.Band); ok {
		out[1] = [2]float64{b.Min, b.Max}
	}
	return out
}

// AllBand is the band that draws every row. Its bounds only set the y axis.
const AllBand = "All"

// InBand reports whether y lies inside the selected band, bounds included.
// Every value is in AllBand.
func (c Controls) InBand(cfg *config.Config, y float64) bool {
	if c.Band == AllBand {
		return true
	}
	b, ok := cfg.Band(c.Band)
	if !ok {
		return true
	}
	return y >= b.Min && y <= b.Max
}
