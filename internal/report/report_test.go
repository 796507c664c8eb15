package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Simplici0/breakeven/internal/breakeven"
)

func TestExplainBEP(t *testing.T) {
	m := breakeven.NewCostModel(10, 4, 1200, 400, breakeven.RoundInteger)
	want := "BEP = fixed costs / (price − variable cost) = 1200 / (10 − 4) = 200 units (£2,000.00)."
	if got := ExplainBEP(m); got != want {
		t.Fatalf("ExplainBEP=%q, want %q", got, want)
	}

	none := breakeven.NewCostModel(5, 5, 1000, 400, breakeven.RoundInteger)
	if got := ExplainBEP(none); got != "No break-even if price is not greater than variable cost." {
		t.Fatalf("ExplainBEP=%q", got)
	}
}

func TestExplainMOS(t *testing.T) {
	m := breakeven.NewCostModel(10, 4, 1200, 400, breakeven.RoundInteger)
	want := "Margin of safety = planned sales − BEP = 150 − 200 = -50 units."
	if got := ExplainMOS(m, 150); got != want {
		t.Fatalf("ExplainMOS=%q, want %q", got, want)
	}
	if got := MOSTag(m, 150); got != "MOS: -50 units" {
		t.Fatalf("MOSTag=%q", got)
	}

	none := breakeven.NewCostModel(5, 5, 1000, 400, breakeven.RoundInteger)
	if got := ExplainMOS(none, 150); got != "Margin of safety not defined without a BEP." {
		t.Fatalf("ExplainMOS=%q", got)
	}
	if got := MOSTag(none, 150); got != "MOS: —" {
		t.Fatalf("MOSTag=%q", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	s := Summary{Model: breakeven.NewCostModel(10, 4, 1200, 400, breakeven.RoundInteger), PlannedUnits: 250}
	if err := WriteCSV(&buf, s); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "key,value" {
		t.Fatalf("header=%q", lines[0])
	}
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines including header, got %d: %q", len(lines), lines)
	}
	if lines[5] != "bep_units,200" || lines[6] != "mos_units,50" {
		t.Fatalf("unexpected tail rows: %q", lines[5:])
	}
}

func TestSummaryRows_UndefinedBreakEven(t *testing.T) {
	s := Summary{Model: breakeven.NewCostModel(5, 5, 1000, 400, breakeven.RoundInteger), PlannedUnits: 250}
	rows := s.Rows()
	if rows[4] != [2]string{"bep_units", ""} || rows[5] != [2]string{"mos_units", ""} {
		t.Fatalf("expected empty break-even rows, got %v", rows[4:])
	}
}
