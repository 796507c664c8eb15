// Package breakeven holds the cost model and the break-even formulas.
package breakeven

// BreakEven is the result of a break-even computation.
// Money is the revenue (equal to total cost) at Units; both are zero when Defined is false.
type BreakEven struct {
	Units   float64
	Money   float64
	Defined bool
}

// BreakEvenUnits returns fixedCost / (price - variableCost).
// It reports false when the contribution margin is not positive, in which case no
// break-even point exists.
func BreakEvenUnits(price, variableCost, fixedCost float64) (float64, bool) {
	margin := price - variableCost
	// NaN fails this comparison too.
	if !(margin > 0) {
		return 0, false
	}
	return fixedCost / margin, true
}

// TotalCost is fixedCost + variableCost*units.
func TotalCost(units, fixedCost, variableCost float64) float64 {
	return fixedCost + variableCost*units
}

// TotalRevenue is price*units.
func TotalRevenue(units, price float64) float64 {
	return price * units
}

// MarginOfSafety returns plannedUnits - bep.Units. The result is negative when the plan
// falls short of break-even. It reports false when bep is not defined.
func MarginOfSafety(plannedUnits float64, bep BreakEven) (float64, bool) {
	if !bep.Defined {
		return 0, false
	}
	return plannedUnits - bep.Units, true
}
