package scale

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Interpolation selects the color space used between ramp stops.
type Interpolation string

const (
	InterpolateRGB Interpolation = "rgb"
	InterpolateHCL Interpolation = "hcl"
)

// ParseColor accepts rgb(r,g,b), #rrggbb, #rgb and SVG color names.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "#"):
		c, err := colorful.Hex(lower)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return c, nil
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		parts := strings.Split(lower[4:len(lower)-1], ",")
		if len(parts) != 3 {
			return colorful.Color{}, fmt.Errorf("invalid rgb color %q", s)
		}
		var ch [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil || v < 0 || v > 255 {
				return colorful.Color{}, fmt.Errorf("invalid rgb channel %q in %q", p, s)
			}
			ch[i] = v / 255
		}
		return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
	}

	if named, ok := colornames.Map[lower]; ok {
		c, _ := colorful.MakeColor(named)
		return c, nil
	}
	return colorful.Color{}, fmt.Errorf("unknown color %q", s)
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(s string) colorful.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Color maps a numeric domain onto a ramp of colors. Stops are spread evenly
// across the domain and values outside it take the nearest end color.
type Color struct {
	linear *Linear
	stops  []colorful.Color
	interp Interpolation
}

// NewColor creates a color scale. It needs at least two stops.
func NewColor(d0, d1 float64, stops []colorful.Color, interp Interpolation) (*Color, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("color scale needs at least two colors, got %d", len(stops))
	}
	if interp == "" {
		interp = InterpolateRGB
	}
	if interp != InterpolateRGB && interp != InterpolateHCL {
		return nil, fmt.Errorf("unknown interpolation %q", interp)
	}
	return &Color{
		linear: NewLinear(d0, d1, 0, 1).SetClamp(true),
		stops:  append([]colorful.Color(nil), stops...),
		interp: interp,
	}, nil
}

// NewColorFromStrings parses the stops with ParseColor.
func NewColorFromStrings(d0, d1 float64, colors []string, interp Interpolation) (*Color, error) {
	stops := make([]colorful.Color, len(colors))
	for i, s := range colors {
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		stops[i] = c
	}
	return NewColor(d0, d1, stops, interp)
}

// Map returns the color for v.
func (c *Color) Map(v float64) colorful.Color {
	t := c.linear.Map(v)
	segments := float64(len(c.stops) - 1)
	pos := t * segments
	i := int(math.Floor(pos))
	if i >= len(c.stops)-1 {
		i = len(c.stops) - 2
	}
	local := pos - float64(i)

	a, b := c.stops[i], c.stops[i+1]
	if c.interp == InterpolateHCL {
		return a.BlendHcl(b, local).Clamped()
	}
	return a.BlendRgb(b, local).Clamped()
}

// X3D returns the color for v as space separated fractions with two decimals.
func (c *Color) X3D(v float64) string {
	return X3DColor(c.Map(v))
}

// X3DColor formats a color the way X3D color fields expect: "r g b" in [0, 1].
func X3DColor(col colorful.Color) string {
	r, g, b := col.RGB255()
	return fmt.Sprintf("%s %s %s", channel(r), channel(g), channel(b))
}

func channel(v uint8) string {
	return strconv.FormatFloat(math.Round(float64(v)/2.55)/100, 'f', -1, 64)
}
