package chart

import (
	"fmt"

	"github.com/Simplici0/breakeven/internal/breakeven"
	"github.com/Simplici0/breakeven/internal/format"
)

// Style classes shared with the rendering adapter.
const (
	ClassAxis         = "axis"
	ClassGridline     = "gridline"
	ClassTick         = "tick"
	ClassAxisLabel    = "axis-label"
	ClassFixedLine    = "line-fixed"
	ClassTotalLine    = "line-total"
	ClassRevenueLine  = "line-revenue"
	ClassBEP          = "bep"
	ClassProfitRegion = "region-profit"
	ClassLossRegion   = "region-loss"
	ClassMOSLine      = "mos-line"
	ClassMOSBrace     = "mos-brace"
	ClassMOSLabel     = "mos-label"
	ClassFixedHit     = "hit-fixed"
)

const (
	bepRadius     = 7
	hitAreaHalf   = 8
	braceOffset   = 4
	braceLabelGap = 18
)

// Point is a pixel position.
type Point struct {
	X float64
	Y float64
}

// DomainPoint is a (units, money) pair before scaling.
type DomainPoint struct {
	Units float64
	Money float64
}

// Line is a straight segment in pixel space.
type Line struct {
	From  Point
	To    Point
	Class string
	Label string
}

// Text is a label anchored at a pixel position. Rotate is in degrees around At.
type Text struct {
	At     Point
	Value  string
	Class  string
	Anchor string
	Rotate float64
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Polygon is a closed region, kept in both domain and pixel coordinates.
type Polygon struct {
	Class  string
	Domain []DomainPoint
	Points []Point
}

// Marker is the break-even point.
type Marker struct {
	Center Point
	Radius float64
	Units  float64
	Money  float64
	Label  string
}

// Brace spans the margin of safety along the units axis.
type Brace struct {
	X1 float64
	X2 float64
	Y  float64
}

// MOSOverlay marks planned sales and the distance to break-even.
type MOSOverlay struct {
	PlannedUnits float64
	Margin       float64
	Line         Line
	Brace        Brace
	Label        Text
}

// Options selects the optional layers of a chart.
type Options struct {
	ShowRegions  bool
	ShowMOS      bool
	PlannedUnits float64
	// Invalid suppresses every break-even dependent layer, including the marker.
	Invalid bool
}

// Guard marks the options invalid when model fails validation. Axes and lines are
// still drawn so the learner can see what went wrong.
func (o Options) Guard(model breakeven.CostModel) Options {
	if model.Validate() != nil {
		o.ShowRegions = false
		o.ShowMOS = false
		o.Invalid = true
	}
	return o
}

// Geometry is a complete chart description. Nil pointers mark absent layers.
type Geometry struct {
	Bounds        ViewBounds
	Axes          []Line
	Gridlines     []Line
	TickLabels    []Text
	AxisTitles    []Text
	FixedLine     Line
	TotalCostLine Line
	RevenueLine   Line
	FixedHitArea  Rect
	BEP           *Marker
	Profit        *Polygon
	Loss          *Polygon
	MOS           *MOSOverlay
	BEPStatus     string
	MOSStatus     string
}

// BuildChartGeometry lays out every chart element for model through scale.
// Break-even dependent layers are only built when the break-even point lies inside
// [0, model.MaxUnits]; otherwise they are nil and the statuses say so.
func BuildChartGeometry(model breakeven.CostModel, scale ScaleMapper, opts Options) Geometry {
	b := scale.Bounds()
	g := Geometry{
		Bounds:    b,
		BEPStatus: "BEP: not defined",
		MOSStatus: "MOS: " + format.Placeholder,
	}

	g.Axes = []Line{
		{From: Point{b.PadLeft, b.Baseline()}, To: Point{b.Right(), b.Baseline()}, Class: ClassAxis},
		{From: Point{b.PadLeft, b.PadTop}, To: Point{b.PadLeft, b.Baseline()}, Class: ClassAxis},
	}

	for _, t := range scale.Ticks() {
		if t.Index > 0 {
			g.Gridlines = append(g.Gridlines,
				Line{From: Point{t.X, b.PadTop}, To: Point{t.X, b.Baseline()}, Class: ClassGridline},
				Line{From: Point{b.PadLeft, t.Y}, To: Point{b.Right(), t.Y}, Class: ClassGridline},
			)
		}
		g.TickLabels = append(g.TickLabels,
			Text{At: Point{t.X, b.Baseline() + 18}, Value: format.Number(t.Units), Class: ClassTick, Anchor: "middle"},
			Text{At: Point{b.PadLeft - 10, t.Y + 4}, Value: format.Money(t.Money), Class: ClassTick, Anchor: "end"},
		)
	}

	midY := b.PadTop + b.InnerHeight()/2
	g.AxisTitles = []Text{
		{At: Point{b.PadLeft + b.InnerWidth()/2, b.Height - 10}, Value: "Units (quantity)", Class: ClassAxisLabel, Anchor: "middle"},
		{At: Point{16, midY}, Value: "Money (£)", Class: ClassAxisLabel, Rotate: -90},
	}

	yFixed := scale.MoneyToY(model.FixedCost)
	g.FixedLine = Line{From: Point{b.PadLeft, yFixed}, To: Point{b.Right(), yFixed}, Class: ClassFixedLine, Label: "Fixed cost"}
	g.FixedHitArea = Rect{X: b.PadLeft, Y: yFixed - hitAreaHalf, W: b.InnerWidth(), H: 2 * hitAreaHalf}

	maxU := model.MaxUnits
	g.TotalCostLine = Line{
		From:  scale.Point(0, model.CostAt(0)),
		To:    scale.Point(maxU, model.CostAt(maxU)),
		Class: ClassTotalLine,
		Label: "Total cost",
	}
	g.RevenueLine = Line{
		From:  scale.Point(0, 0),
		To:    scale.Point(maxU, model.RevenueAt(maxU)),
		Class: ClassRevenueLine,
		Label: "Total revenue",
	}

	bep := model.BreakEven()
	if opts.Invalid || !model.Plottable(bep) {
		if opts.ShowMOS {
			g.MOSStatus = "MOS: not defined"
		}
		return g
	}

	g.BEP = &Marker{
		Center: scale.Point(bep.Units, bep.Money),
		Radius: bepRadius,
		Units:  bep.Units,
		Money:  bep.Money,
		Label:  fmt.Sprintf("Break-even at %.2f units and %s", bep.Units, format.Money2(bep.Money)),
	}
	g.BEPStatus = fmt.Sprintf("BEP: %s units | %s", format.Units(bep.Units, model.Rounding), format.Money2(bep.Money))

	if opts.ShowRegions {
		g.Profit = buildPolygon(scale, ClassProfitRegion, []DomainPoint{
			{bep.Units, model.CostAt(bep.Units)},
			{maxU, model.CostAt(maxU)},
			{maxU, model.RevenueAt(maxU)},
			{bep.Units, model.RevenueAt(bep.Units)},
		})
		g.Loss = buildPolygon(scale, ClassLossRegion, []DomainPoint{
			{0, 0},
			{0, model.FixedCost},
			{bep.Units, model.CostAt(bep.Units)},
			{bep.Units, model.RevenueAt(bep.Units)},
		})
	}

	if opts.ShowMOS {
		g.MOS = buildMOS(model, scale, bep, opts.PlannedUnits)
		g.MOSStatus = fmt.Sprintf("MOS: %s units", format.Units(g.MOS.Margin, model.Rounding))
	}

	return g
}

func buildPolygon(scale ScaleMapper, class string, domain []DomainPoint) *Polygon {
	points := make([]Point, 0, len(domain))
	for _, d := range domain {
		points = append(points, scale.Point(d.Units, d.Money))
	}
	return &Polygon{Class: class, Domain: domain, Points: points}
}

func buildMOS(model breakeven.CostModel, scale ScaleMapper, bep breakeven.BreakEven, planned float64) *MOSOverlay {
	margin, _ := breakeven.MarginOfSafety(planned, bep)
	b := scale.Bounds()

	xPlan := scale.UnitsToX(planned)
	xBEP := scale.UnitsToX(bep.Units)
	y := b.Baseline() + braceOffset
	x1, x2 := min(xBEP, xPlan), max(xBEP, xPlan)

	return &MOSOverlay{
		PlannedUnits: planned,
		Margin:       margin,
		Line: Line{
			From:  Point{xPlan, b.Baseline()},
			To:    Point{xPlan, scale.MoneyToY(model.RevenueAt(planned))},
			Class: ClassMOSLine,
			Label: "Planned sales",
		},
		Brace: Brace{X1: x1, X2: x2, Y: y},
		Label: Text{
			At:     Point{(x1 + x2) / 2, y + braceLabelGap},
			Value:  fmt.Sprintf("MOS %s units", format.Units(margin, model.Rounding)),
			Class:  ClassMOSLabel,
			Anchor: "middle",
		},
	}
}
