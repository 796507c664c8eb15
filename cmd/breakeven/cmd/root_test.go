package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Simplici0/breakeven/internal/apperr"
)

const presetsHCL = `
scenario "lemonade" {
  description   = "Summer stall"
  price         = 2.5
  variable_cost = 0.5
  fixed_cost    = 300
  max_units     = 400
  planned_units = 120
  rounding      = "dp2"
}
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writePresets(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.hcl")
	if err := os.WriteFile(path, []byte(presetsHCL), 0o644); err != nil {
		t.Fatalf("write presets: %v", err)
	}
	return path
}

func TestBEP_ClassroomExample(t *testing.T) {
	out, _, err := runCLI(t, "bep")
	if err != nil {
		t.Fatalf("bep: %v", err)
	}
	want := "BEP = fixed costs / (price − variable cost) = 1200 / (10 − 4) = 200 units (£2,000.00).\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestBEP_FlagsOverrideAndWarn(t *testing.T) {
	out, errOut, err := runCLI(t, "bep", "--price", "4", "--variable-cost", "5")
	if err != nil {
		t.Fatalf("bep: %v", err)
	}
	if !strings.Contains(out, "No break-even if price is not greater than variable cost.") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(errOut, "Check inputs: Price must be greater than variable cost") {
		t.Fatalf("expected validation warning, got %q", errOut)
	}
}

func TestMOS_Shortfall(t *testing.T) {
	out, _, err := runCLI(t, "mos", "--plan", "150")
	if err != nil {
		t.Fatalf("mos: %v", err)
	}
	if !strings.Contains(out, "= 150 − 200 = -50 units.") || !strings.Contains(out, "MOS: -50 units") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestChart_WritesSVGFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.svg")
	_, errOut, err := runCLI(t, "chart", "--regions", "--mos", "--out", path)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}

	svg, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	for _, want := range []string{"<svg", `class="region-profit"`, `class="mos-brace"`, `class="bep"`} {
		if !bytes.Contains(svg, []byte(want)) {
			t.Fatalf("expected %q in chart", want)
		}
	}
	if !strings.Contains(errOut, "BEP: 200 units | £2,000.00") || !strings.Contains(errOut, "MOS: 50 units") {
		t.Fatalf("unexpected status lines %q", errOut)
	}
}

func TestExport_UsesPresetFile(t *testing.T) {
	out, _, err := runCLI(t, "export", "--scenario", writePresets(t), "--name", "lemonade")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 || lines[0] != "key,value" || lines[1] != "price,2.5" || lines[5] != "bep_units,150.00" {
		t.Fatalf("unexpected csv %q", lines)
	}
}

func TestScenarios_ListsDefaultAndPresets(t *testing.T) {
	out, _, err := runCLI(t, "scenarios", "--scenario", writePresets(t))
	if err != nil {
		t.Fatalf("scenarios: %v", err)
	}
	for _, want := range []string{"NAME", "MARGIN", "default", "£6.00", "lemonade", "£2.00", "150.00 units", "Summer stall"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestUnknownScenario(t *testing.T) {
	_, _, err := runCLI(t, "bep", "--name", "missing")
	if !apperr.IsType(err, apperr.TypeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestSelfTestAndVersion(t *testing.T) {
	out, _, err := runCLI(t, "selftest")
	if err != nil {
		t.Fatalf("selftest: %v\n%s", err, out)
	}
	if strings.Contains(out, "✗") {
		t.Fatalf("unexpected failure in %q", out)
	}

	out, _, err = runCLI(t, "version")
	if err != nil || out != "breakeven version "+version+"\n" {
		t.Fatalf("version: %q %v", out, err)
	}
}
