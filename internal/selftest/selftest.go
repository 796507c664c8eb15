// Package selftest runs the classroom sanity checks shown on the developer panel.
package selftest

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/Simplici0/breakeven/internal/breakeven"
	"github.com/Simplici0/breakeven/internal/format"
	"github.com/Simplici0/breakeven/internal/report"
)

// Check is the outcome of one sanity check.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Line renders the check as a ✓/✗ line.
func (c Check) Line() string {
	if c.Passed {
		return "✓ " + c.Name
	}
	return "✗ " + c.Name + " (" + c.Detail + ")"
}

// Run executes every check in a fixed order.
func Run() []Check {
	var checks []Check
	add := func(name string, passed bool, detail string) {
		checks = append(checks, Check{Name: name, Passed: passed, Detail: detail})
	}

	bu, ok := breakeven.BreakEvenUnits(10, 4, 1200)
	add("BEP formula passes (expected 200 units).", ok && math.Abs(bu-200) < 1e-9, fmt.Sprintf("got %v", bu))

	_, ok = breakeven.BreakEvenUnits(5, 5, 1000)
	add("No BEP when price equals variable cost.", !ok, "expected no BEP")

	lines, err := csvLines()
	add("CSV header correct.", err == nil && len(lines) > 0 && lines[0] == "key,value", headerDetail(lines, err))
	add("CSV has 7 lines including header.", err == nil && len(lines) == 7, fmt.Sprintf("got %d", len(lines)))

	got := format.Units(200.49, breakeven.RoundInteger)
	add("Rounding int ok.", got == "200", "got "+got)
	got = format.Units(200.49, breakeven.RoundTwoDecimal)
	add("Rounding dp2 ok.", got == "200.49", "got "+got)

	invalid := breakeven.NewCostModel(4, 5, 100, 400, breakeven.RoundInteger)
	add("Validation catches price <= variable cost.", invalid.Validate() != nil, "validation passed")

	model := breakeven.NewCostModel(10, 4, 1200, 400, breakeven.RoundInteger)
	mos, ok := breakeven.MarginOfSafety(150, model.BreakEven())
	add("MOS becomes negative when plan < BEP.", ok && mos < 0, fmt.Sprintf("got %v", mos))

	return checks
}

// Passed reports whether every check passed.
func Passed(checks []Check) bool {
	for _, c := range checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Report joins the check lines.
func Report(checks []Check) string {
	lines := make([]string, 0, len(checks))
	for _, c := range checks {
		lines = append(lines, c.Line())
	}
	return strings.Join(lines, "\n")
}

func csvLines() ([]string, error) {
	var buf bytes.Buffer
	s := report.Summary{Model: breakeven.NewCostModel(10, 4, 1200, 400, breakeven.RoundInteger), PlannedUnits: 250}
	if err := report.WriteCSV(&buf, s); err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"), nil
}

func headerDetail(lines []string, err error) string {
	if err != nil {
		return err.Error()
	}
	if len(lines) == 0 {
		return "empty"
	}
	return "got " + lines[0]
}
