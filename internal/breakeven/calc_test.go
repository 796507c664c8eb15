package breakeven

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestBreakEvenUnits_ClassroomExample(t *testing.T) {
	units, ok := BreakEvenUnits(10, 4, 1200)
	if !ok {
		t.Fatalf("expected break-even to be defined")
	}
	nearlyEqual(t, "units", units, 200)

	bep := NewCostModel(10, 4, 1200, 400, RoundInteger).BreakEven()
	nearlyEqual(t, "money", bep.Money, 2000)
}

func TestBreakEvenUnits_UndefinedWhenMarginNotPositive(t *testing.T) {
	cases := []struct {
		name          string
		price, vc, fc float64
	}{
		{"price equals variable cost", 5, 5, 1000},
		{"price below variable cost", 4, 5, 100},
		{"nan price", math.NaN(), 1, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := BreakEvenUnits(tc.price, tc.vc, tc.fc); ok {
				t.Fatalf("expected no break-even point")
			}
		})
	}
}

func TestBreakEvenUnits_CostEqualsRevenue(t *testing.T) {
	for _, price := range []float64{1.5, 7, 10, 99.99} {
		for _, vc := range []float64{0, 0.5, 1.25} {
			for _, fc := range []float64{0, 100, 1200, 54321.5} {
				units, ok := BreakEvenUnits(price, vc, fc)
				if !ok {
					t.Fatalf("price=%v vc=%v: expected defined", price, vc)
				}
				nearlyEqual(t, "units", units, fc/(price-vc))

				cost := TotalCost(units, fc, vc)
				revenue := TotalRevenue(units, price)
				if math.Abs(cost-revenue) > 1e-6*math.Max(1, revenue) {
					t.Fatalf("price=%v vc=%v fc=%v: cost %v != revenue %v", price, vc, fc, cost, revenue)
				}
			}
		}
	}
}

func TestTotals(t *testing.T) {
	nearlyEqual(t, "cost at 0", TotalCost(0, 1200, 4), 1200)
	nearlyEqual(t, "cost at 400", TotalCost(400, 1200, 4), 2800)
	nearlyEqual(t, "revenue at 400", TotalRevenue(400, 10), 4000)
}

func TestMarginOfSafety(t *testing.T) {
	bep := NewCostModel(10, 4, 1200, 400, RoundInteger).BreakEven()

	mos, ok := MarginOfSafety(150, bep)
	if !ok {
		t.Fatalf("expected margin of safety to be defined")
	}
	nearlyEqual(t, "shortfall", mos, -50)

	mos, ok = MarginOfSafety(250, bep)
	if !ok {
		t.Fatalf("expected margin of safety to be defined")
	}
	nearlyEqual(t, "cushion", mos, 50)

	if _, ok := MarginOfSafety(250, BreakEven{}); ok {
		t.Fatalf("expected undefined margin of safety without a break-even point")
	}
}
