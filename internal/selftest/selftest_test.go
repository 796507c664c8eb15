package selftest

import (
	"strings"
	"testing"
)

func TestRun_AllChecksPass(t *testing.T) {
	checks := Run()
	if len(checks) != 8 {
		t.Fatalf("expected 8 checks, got %d", len(checks))
	}
	for _, c := range checks {
		if !c.Passed {
			t.Fatalf("check failed: %s", c.Line())
		}
	}
	if !Passed(checks) {
		t.Fatalf("Passed should be true")
	}
}

func TestReport(t *testing.T) {
	out := Report([]Check{
		{Name: "BEP formula passes (expected 200 units).", Passed: true},
		{Name: "CSV header correct.", Passed: false, Detail: "got k,v"},
	})
	want := "✓ BEP formula passes (expected 200 units).\n✗ CSV header correct. (got k,v)"
	if out != want {
		t.Fatalf("Report=%q, want %q", out, want)
	}
	if !strings.HasPrefix(Report(Run()), "✓ ") {
		t.Fatalf("expected first line to pass")
	}
}
