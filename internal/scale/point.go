// Package scale maps data domains to scene coordinates and colors.
package scale

import (
	"math"
)

// Point places ordinal keys at evenly spaced positions across a range.
// The first key sits on the range start and the last on the range end;
// a single key sits in the middle.
type Point struct {
	keys  []string
	index map[string]int
	r0    float64
	r1    float64
}

// NewPoint creates a point scale over keys mapped onto [r0, r1].
func NewPoint(keys []string, r0, r1 float64) *Point {
	p := &Point{r0: r0, r1: r1}
	p.SetDomain(keys)
	return p
}

// SetDomain replaces the scale's keys. Duplicate keys keep their first position.
func (p *Point) SetDomain(keys []string) {
	p.keys = p.keys[:0]
	p.index = make(map[string]int, len(keys))
	for _, k := range keys {
		if _, ok := p.index[k]; ok {
			continue
		}
		p.index[k] = len(p.keys)
		p.keys = append(p.keys, k)
	}
}

// Domain returns the scale's keys in order.
func (p *Point) Domain() []string {
	return append([]string(nil), p.keys...)
}

// Range returns the output range.
func (p *Point) Range() (float64, float64) {
	return p.r0, p.r1
}

// Step returns the distance between adjacent keys.
func (p *Point) Step() float64 {
	n := len(p.keys)
	if n <= 1 {
		return p.r1 - p.r0
	}
	return (p.r1 - p.r0) / float64(n-1)
}

// Map returns the position of key, or NaN and false when the key is unknown.
func (p *Point) Map(key string) (float64, bool) {
	i, ok := p.index[key]
	if !ok {
		return math.NaN(), false
	}
	if len(p.keys) == 1 {
		return (p.r0 + p.r1) / 2, true
	}
	return p.r0 + float64(i)*p.Step(), true
}

// Ticks returns the domain keys with their positions.
func (p *Point) Ticks() []Tick {
	ticks := make([]Tick, len(p.keys))
	for i, k := range p.keys {
		pos, _ := p.Map(k)
		ticks[i] = Tick{Value: pos, Label: k}
	}
	return ticks
}

// AxisTicks returns Ticks. It lets a point scale drive an axis.
func (p *Point) AxisTicks() []Tick {
	return p.Ticks()
}
