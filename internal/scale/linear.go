package scale

import (
	"math"

	mscale "github.com/aclements/go-moremath/scale"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTickCount is the tick count used when a caller asks for none.
const DefaultTickCount = 10

// Tick is a labelled position along an axis. Value is in range units.
type Tick struct {
	Value float64
	Label string
	Datum float64
}

// Linear maps a numeric domain onto a numeric range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
	clamp  bool
}

// NewLinear creates a linear scale from [d0, d1] to [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the input domain.
func (l *Linear) Domain() (float64, float64) {
	return l.d0, l.d1
}

// Range returns the output range.
func (l *Linear) Range() (float64, float64) {
	return l.r0, l.r1
}

// SetClamp limits mapped values to the range.
func (l *Linear) SetClamp(clamp bool) *Linear {
	l.clamp = clamp
	return l
}

func (l *Linear) moremath() mscale.Linear {
	lo, hi := l.d0, l.d1
	if lo > hi {
		lo, hi = hi, lo
	}
	return mscale.Linear{Min: lo, Max: hi}
}

// Map maps v from the domain to the range. A degenerate domain maps every
// value to the middle of the range.
func (l *Linear) Map(v float64) float64 {
	if l.d0 == l.d1 {
		return (l.r0 + l.r1) / 2
	}
	t := l.moremath().Map(v)
	if l.d0 > l.d1 {
		t = 1 - t
	}
	if l.clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return l.r0 + t*(l.r1-l.r0)
}

// Nice widens the domain outwards to round tick boundaries.
func (l *Linear) Nice(count int) *Linear {
	if l.d0 == l.d1 {
		return l
	}
	s := l.moremath()
	s.Nice(mscale.TickOptions{Max: tickCount(count)})
	if l.d0 > l.d1 {
		l.d0, l.d1 = s.Max, s.Min
	} else {
		l.d0, l.d1 = s.Min, s.Max
	}
	return l
}

// Ticks returns at most count ticks inside the domain, labelled with grouped
// thousands ("1,500") and as many decimals as the tick spacing needs.
func (l *Linear) Ticks(count int) []Tick {
	if l.d0 == l.d1 {
		return []Tick{l.tick(l.d0, 0)}
	}
	major, _ := l.moremath().Ticks(mscale.TickOptions{Max: tickCount(count)})

	precision := 0
	if len(major) > 1 {
		precision = decimalsOf(major[1] - major[0])
	}
	ticks := make([]Tick, len(major))
	for i, v := range major {
		ticks[i] = l.tick(v, precision)
	}
	return ticks
}

func (l *Linear) tick(v float64, precision int) Tick {
	return Tick{Value: l.Map(v), Label: FormatNumber(v, precision), Datum: v}
}

var printer = message.NewPrinter(language.English)

// FormatNumber formats v with grouped thousands and the given decimals.
func FormatNumber(v float64, precision int) string {
	if precision <= 0 {
		return printer.Sprintf("%d", int64(math.Round(v)))
	}
	return printer.Sprintf("%.*f", precision, v)
}

func decimalsOf(step float64) int {
	d, _ := decimal.NewFromFloat(step).Round(10).Float64()
	places := -int(decimal.NewFromFloat(d).Exponent())
	if places < 0 {
		return 0
	}
	return places
}

func tickCount(count int) int {
	if count <= 0 {
		return DefaultTickCount
	}
	return count
}

// AxisTicks returns the default tick set for an axis.
func (l *Linear) AxisTicks() []Tick {
	return l.Ticks(DefaultTickCount)
}
