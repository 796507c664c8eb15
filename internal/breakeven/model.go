package breakeven

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/multierr"

	"github.com/Simplici0/breakeven/internal/apperr"
)

const (
	// MinMaxUnits is the smallest units range a chart can span.
	MinMaxUnits = 10
	// DefaultMaxUnits is used when no usable range was supplied.
	DefaultMaxUnits = 100
)

// RoundingMode selects how unit values are displayed. It never changes a computation.
type RoundingMode string

const (
	RoundInteger    RoundingMode = "int"
	RoundTwoDecimal RoundingMode = "dp2"
)

// ParseRoundingMode accepts "int" and "dp2". An empty string selects RoundInteger.
func ParseRoundingMode(raw string) (RoundingMode, error) {
	switch RoundingMode(strings.TrimSpace(raw)) {
	case "", RoundInteger:
		return RoundInteger, nil
	case RoundTwoDecimal:
		return RoundTwoDecimal, nil
	}
	return RoundInteger, apperr.Input(fmt.Sprintf("rounding must be %q or %q", RoundInteger, RoundTwoDecimal))
}

// CostModel is a linear cost/revenue model. It is a plain value: callers build a new
// one for every change instead of mutating a shared instance.
type CostModel struct {
	Price        float64
	VariableCost float64
	FixedCost    float64
	MaxUnits     float64
	Rounding     RoundingMode
}

// NewCostModel builds a CostModel, falling back to DefaultMaxUnits for a zero or NaN
// range and clamping the range to at least MinMaxUnits.
func NewCostModel(price, variableCost, fixedCost, maxUnits float64, rounding RoundingMode) CostModel {
	if maxUnits == 0 || math.IsNaN(maxUnits) {
		maxUnits = DefaultMaxUnits
	}
	if rounding == "" {
		rounding = RoundInteger
	}
	return CostModel{
		Price:        price,
		VariableCost: variableCost,
		FixedCost:    fixedCost,
		MaxUnits:     math.Max(MinMaxUnits, maxUnits),
		Rounding:     rounding,
	}
}

// Validate checks every input rule and returns all failures combined.
func (m CostModel) Validate() error {
	var err error
	if !(m.Price > 0) {
		err = multierr.Append(err, apperr.Input("Price should be greater than 0.").WithContext("field", "price"))
	}
	if m.VariableCost < 0 {
		err = multierr.Append(err, apperr.Input("Variable cost cannot be negative.").WithContext("field", "vc"))
	}
	if m.FixedCost < 0 {
		err = multierr.Append(err, apperr.Input("Fixed cost cannot be negative.").WithContext("field", "fc"))
	}
	if m.Price <= m.VariableCost {
		err = multierr.Append(err, apperr.Input("Price must be greater than variable cost, otherwise BEP is not defined."))
	}
	return err
}

// Reason joins the messages of a Validate error into one sentence list.
func Reason(err error) string {
	errs := multierr.Errors(err)
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, apperr.Message(e))
	}
	return strings.Join(msgs, " ")
}

// ContributionMargin is price minus variable cost per unit.
func (m CostModel) ContributionMargin() float64 {
	return m.Price - m.VariableCost
}

// CostAt is the total cost of producing units.
func (m CostModel) CostAt(units float64) float64 {
	return TotalCost(units, m.FixedCost, m.VariableCost)
}

// RevenueAt is the total revenue from selling units.
func (m CostModel) RevenueAt(units float64) float64 {
	return TotalRevenue(units, m.Price)
}

// BreakEven computes the break-even point of the model.
func (m CostModel) BreakEven() BreakEven {
	units, ok := BreakEvenUnits(m.Price, m.VariableCost, m.FixedCost)
	if !ok {
		return BreakEven{}
	}
	return BreakEven{Units: units, Money: m.RevenueAt(units), Defined: true}
}

// Plottable reports whether the break-even point lies inside [0, MaxUnits].
// The comparison is exact; rounding mode does not widen it.
func (m CostModel) Plottable(bep BreakEven) bool {
	return bep.Defined && !math.IsInf(bep.Units, 0) && bep.Units >= 0 && bep.Units <= m.MaxUnits
}
