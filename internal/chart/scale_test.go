package chart

import (
	"math"
	"testing"

	"github.com/Simplici0/breakeven/internal/breakeven"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func classroomModel() breakeven.CostModel {
	return breakeven.NewCostModel(10, 4, 1200, 400, breakeven.RoundInteger)
}

func TestDefaultViewBounds(t *testing.T) {
	b := DefaultViewBounds(0)
	if b.Width != 800 || b.Height != 460 {
		t.Fatalf("unexpected default viewport: %+v", b)
	}
	nearlyEqual(t, "inner width", b.InnerWidth(), 724)
	nearlyEqual(t, "inner height", b.InnerHeight(), 386)
	nearlyEqual(t, "baseline", b.Baseline(), 410)

	if got := DefaultViewBounds(1024).Width; got != 1024 {
		t.Fatalf("width=%v, want 1024", got)
	}
}

func TestBuildScaleMapper_MaxMoneyHasHeadroom(t *testing.T) {
	s := BuildScaleMapper(classroomModel(), DefaultViewBounds(800))

	// revenue(400)=4000 beats cost(400)=2800
	nearlyEqual(t, "maxMoney", s.MaxMoney(), 4400)

	costly := breakeven.NewCostModel(10, 9, 5000, 100, breakeven.RoundInteger)
	// cost(100)=5900 beats revenue(100)=1000
	nearlyEqual(t, "maxMoney", BuildScaleMapper(costly, DefaultViewBounds(800)).MaxMoney(), 6490)
}

func TestUnitsToX_Endpoints(t *testing.T) {
	b := DefaultViewBounds(800)
	s := BuildScaleMapper(classroomModel(), b)

	nearlyEqual(t, "x(0)", s.UnitsToX(0), b.PadLeft)
	nearlyEqual(t, "x(max)", s.UnitsToX(400), b.PadLeft+b.InnerWidth())
	nearlyEqual(t, "x(mid)", s.UnitsToX(200), b.PadLeft+b.InnerWidth()/2)
}

func TestMoneyToY_Endpoints(t *testing.T) {
	b := DefaultViewBounds(800)
	s := BuildScaleMapper(classroomModel(), b)

	nearlyEqual(t, "y(0)", s.MoneyToY(0), b.Baseline())
	nearlyEqual(t, "y(max)", s.MoneyToY(s.MaxMoney()), b.PadTop)
}

func TestScaleMapper_GuardsEmptyRanges(t *testing.T) {
	b := DefaultViewBounds(800)
	zero := breakeven.CostModel{Price: 0, VariableCost: 0, FixedCost: 0, MaxUnits: 0}
	s := BuildScaleMapper(zero, b)

	x := s.UnitsToX(10)
	y := s.MoneyToY(10)
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		t.Fatalf("expected finite pixels, got x=%v y=%v", x, y)
	}
	nearlyEqual(t, "x", x, b.PadLeft)
	nearlyEqual(t, "y", y, b.Baseline())
}

func TestTicks_EvenlySpaced(t *testing.T) {
	b := DefaultViewBounds(800)
	s := BuildScaleMapper(classroomModel(), b)
	ticks := s.Ticks()

	if len(ticks) != TickCount+1 {
		t.Fatalf("expected %d ticks, got %d", TickCount+1, len(ticks))
	}
	for i, tk := range ticks {
		nearlyEqual(t, "units", tk.Units, 80*float64(i))
		nearlyEqual(t, "money", tk.Money, 880*float64(i))
		nearlyEqual(t, "x", tk.X, s.UnitsToX(tk.Units))
		nearlyEqual(t, "y", tk.Y, s.MoneyToY(tk.Money))
	}
}
