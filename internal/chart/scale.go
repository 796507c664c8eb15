// Package chart maps a cost model onto a pixel viewport and describes the resulting
// chart as plain geometry values. It draws nothing itself.
package chart

import (
	"math"

	"github.com/Simplici0/breakeven/internal/breakeven"
)

const (
	// TickCount is the number of intervals on each axis.
	TickCount = 5
	// Headroom scales the money axis above the larger curve value at MaxUnits.
	Headroom = 1.1

	defaultWidth  = 800
	defaultHeight = 460
)

// ViewBounds is the pixel viewport and its margins.
type ViewBounds struct {
	Width     float64
	Height    float64
	PadLeft   float64
	PadRight  float64
	PadTop    float64
	PadBottom float64
}

// DefaultViewBounds returns the standard chart viewport for a container width.
// A non-positive width falls back to 800px.
func DefaultViewBounds(width float64) ViewBounds {
	if !(width > 0) {
		width = defaultWidth
	}
	return ViewBounds{
		Width:     width,
		Height:    defaultHeight,
		PadLeft:   60,
		PadRight:  16,
		PadTop:    24,
		PadBottom: 50,
	}
}

// InnerWidth is the plot width inside the paddings.
func (b ViewBounds) InnerWidth() float64 { return b.Width - b.PadLeft - b.PadRight }

// InnerHeight is the plot height inside the paddings.
func (b ViewBounds) InnerHeight() float64 { return b.Height - b.PadTop - b.PadBottom }

// Baseline is the pixel y of the units axis.
func (b ViewBounds) Baseline() float64 { return b.Height - b.PadBottom }

// Right is the pixel x of the right edge of the plot.
func (b ViewBounds) Right() float64 { return b.Width - b.PadRight }

// ScaleMapper converts domain values (units, money) to pixels. It is derived from one
// model and one viewport and is rebuilt for every render.
type ScaleMapper struct {
	bounds   ViewBounds
	maxUnits float64
	maxMoney float64
}

// BuildScaleMapper derives the linear transforms for model drawn into bounds.
func BuildScaleMapper(model breakeven.CostModel, bounds ViewBounds) ScaleMapper {
	peak := math.Max(model.CostAt(model.MaxUnits), model.RevenueAt(model.MaxUnits))
	return ScaleMapper{
		bounds:   bounds,
		maxUnits: model.MaxUnits,
		maxMoney: peak * Headroom,
	}
}

// Bounds returns the viewport the mapper was built for.
func (s ScaleMapper) Bounds() ViewBounds { return s.bounds }

// MaxUnits is the top of the units axis.
func (s ScaleMapper) MaxUnits() float64 { return s.maxUnits }

// MaxMoney is the top of the money axis.
func (s ScaleMapper) MaxMoney() float64 { return s.maxMoney }

// UnitsToX maps a units value to a pixel x. An empty units range maps everything to the axis.
func (s ScaleMapper) UnitsToX(u float64) float64 {
	if !(s.maxUnits > 0) {
		return s.bounds.PadLeft
	}
	return s.bounds.PadLeft + (u/s.maxUnits)*s.bounds.InnerWidth()
}

// MoneyToY maps a money value to a pixel y. An empty money range maps everything to the axis.
func (s ScaleMapper) MoneyToY(m float64) float64 {
	if !(s.maxMoney > 0) {
		return s.bounds.Baseline()
	}
	return s.bounds.Baseline() - (m/s.maxMoney)*s.bounds.InnerHeight()
}

// Point maps a domain pair to pixels.
func (s ScaleMapper) Point(units, money float64) Point {
	return Point{X: s.UnitsToX(units), Y: s.MoneyToY(money)}
}

// Tick is one gridline position on both axes.
type Tick struct {
	Index int
	Units float64
	Money float64
	X     float64
	Y     float64
}

// Ticks returns TickCount+1 evenly spaced ticks starting at the origin.
func (s ScaleMapper) Ticks() []Tick {
	ticks := make([]Tick, 0, TickCount+1)
	for i := 0; i <= TickCount; i++ {
		u := s.maxUnits / TickCount * float64(i)
		ticks = append(ticks, Tick{
			Index: i,
			Units: u,
			Money: s.maxMoney / TickCount * float64(i),
			X:     s.UnitsToX(u),
			Y:     s.bounds.Baseline() - s.bounds.InnerHeight()/TickCount*float64(i),
		})
	}
	return ticks
}
