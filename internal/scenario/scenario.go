// Package scenario loads preset cost models from HCL files.
//
// A file holds one or more blocks:
//
//	scenario "lemonade" {
//	  description   = "Summer stall"
//	  price         = 2.5
//	  variable_cost = 0.8
//	  fixed_cost    = 340
//	  max_units     = 400
//	  planned_units = 250
//	  rounding      = "dp2"
//	}
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/Simplici0/breakeven/internal/apperr"
	"github.com/Simplici0/breakeven/internal/breakeven"
)

// DefaultName is the scenario restored by the reset button.
const DefaultName = "default"

// Scenario is a named preset.
type Scenario struct {
	Name         string
	Description  string
	Model        breakeven.CostModel
	PlannedUnits float64
}

// Default returns the classroom example.
func Default() Scenario {
	return Scenario{
		Name:         DefaultName,
		Description:  "Classroom example",
		Model:        breakeven.NewCostModel(10, 4, 1200, 400, breakeven.RoundInteger),
		PlannedUnits: 250,
	}
}

type fileSpec struct {
	Scenarios []blockSpec `hcl:"scenario,block"`
}

type blockSpec struct {
	Name         string   `hcl:"name,label"`
	Description  *string  `hcl:"description,optional"`
	Price        float64  `hcl:"price"`
	VariableCost float64  `hcl:"variable_cost"`
	FixedCost    float64  `hcl:"fixed_cost"`
	MaxUnits     *float64 `hcl:"max_units,optional"`
	PlannedUnits *float64 `hcl:"planned_units,optional"`
	Rounding     *string  `hcl:"rounding,optional"`
}

// LoadFile parses the scenarios in path.
func LoadFile(path string) ([]Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.TypeConfig, "read scenario file", err).WithContext("path", path)
	}
	return Parse(src, path)
}

// Parse decodes HCL source. Duplicate names and invalid rounding modes are errors;
// cost rules are left to CostModel.Validate so presets can demonstrate invalid input.
func Parse(src []byte, filename string) ([]Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, apperr.Parsing("parse scenario file", diagnosticsError(diags)).WithContext("file", filename)
	}

	var spec fileSpec
	if diags := gohcl.DecodeBody(file.Body, nil, &spec); diags.HasErrors() {
		return nil, apperr.Parsing("decode scenario file", diagnosticsError(diags)).WithContext("file", filename)
	}

	seen := make(map[string]bool, len(spec.Scenarios))
	out := make([]Scenario, 0, len(spec.Scenarios))
	for _, b := range spec.Scenarios {
		if seen[b.Name] {
			return nil, apperr.Parsing(fmt.Sprintf("duplicate scenario %q", b.Name), nil).WithContext("file", filename)
		}
		seen[b.Name] = true

		s, err := b.toScenario()
		if err != nil {
			return nil, apperr.Parsing(fmt.Sprintf("scenario %q", b.Name), err).WithContext("file", filename)
		}
		out = append(out, s)
	}
	return out, nil
}

func (b blockSpec) toScenario() (Scenario, error) {
	rounding := breakeven.RoundInteger
	if b.Rounding != nil {
		r, err := breakeven.ParseRoundingMode(*b.Rounding)
		if err != nil {
			return Scenario{}, err
		}
		rounding = r
	}

	var maxUnits float64
	if b.MaxUnits != nil {
		maxUnits = *b.MaxUnits
	}

	s := Scenario{
		Name:  b.Name,
		Model: breakeven.NewCostModel(b.Price, b.VariableCost, b.FixedCost, maxUnits, rounding),
	}
	if b.Description != nil {
		s.Description = *b.Description
	}
	if b.PlannedUnits != nil {
		s.PlannedUnits = *b.PlannedUnits
	}
	return s, nil
}

type diagnosticsError hcl.Diagnostics

func (d diagnosticsError) Error() string {
	msgs := make([]string, 0, len(d))
	for _, diag := range d {
		if diag.Severity != hcl.DiagError {
			continue
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		if diag.Subject != nil {
			msg = fmt.Sprintf("line %d: %s", diag.Subject.Start.Line, msg)
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}
