// Package report explains break-even results in words and exports them as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Simplici0/breakeven/internal/breakeven"
	"github.com/Simplici0/breakeven/internal/format"
)

// ExplainBEP walks through the break-even formula with the model's numbers.
func ExplainBEP(m breakeven.CostModel) string {
	bep := m.BreakEven()
	if !bep.Defined {
		return "No break-even if price is not greater than variable cost."
	}
	return fmt.Sprintf("BEP = fixed costs / (price − variable cost) = %s / (%s − %s) = %s units (%s).",
		plain(m.FixedCost), plain(m.Price), plain(m.VariableCost),
		format.Units(bep.Units, m.Rounding), format.Money2(bep.Money))
}

// ExplainMOS walks through the margin of safety for planned sales.
func ExplainMOS(m breakeven.CostModel, planned float64) string {
	bep := m.BreakEven()
	mos, ok := breakeven.MarginOfSafety(planned, bep)
	if !ok {
		return "Margin of safety not defined without a BEP."
	}
	return fmt.Sprintf("Margin of safety = planned sales − BEP = %s − %s = %s units.",
		format.Units(planned, m.Rounding), format.Units(bep.Units, m.Rounding), format.Units(mos, m.Rounding))
}

// MOSTag is the short margin-of-safety status line.
func MOSTag(m breakeven.CostModel, planned float64) string {
	mos, ok := breakeven.MarginOfSafety(planned, m.BreakEven())
	if !ok {
		return "MOS: " + format.Placeholder
	}
	return fmt.Sprintf("MOS: %s units", format.Units(mos, m.Rounding))
}

// Summary is one exported scenario.
type Summary struct {
	Model        breakeven.CostModel
	PlannedUnits float64
}

// Rows returns the key/value pairs written by WriteCSV. Undefined values are empty.
func (s Summary) Rows() [][2]string {
	bep := s.Model.BreakEven()
	bepUnits, mosUnits := "", ""
	if bep.Defined {
		bepUnits = format.Units(bep.Units, s.Model.Rounding)
		mos, _ := breakeven.MarginOfSafety(s.PlannedUnits, bep)
		mosUnits = format.Units(mos, s.Model.Rounding)
	}
	return [][2]string{
		{"price", plain(s.Model.Price)},
		{"variable_cost", plain(s.Model.VariableCost)},
		{"fixed_cost", plain(s.Model.FixedCost)},
		{"max_units", plain(s.Model.MaxUnits)},
		{"bep_units", bepUnits},
		{"mos_units", mosUnits},
	}
}

// WriteCSV writes the summary with a key,value header.
func WriteCSV(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "value"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range s.Rows() {
		if err := cw.Write(row[:]); err != nil {
			return fmt.Errorf("write csv row %s: %w", row[0], err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
