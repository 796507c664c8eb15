// Package cmd provides the CLI commands for breakeven.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/breakeven/internal/apperr"
	"github.com/Simplici0/breakeven/internal/breakeven"
	"github.com/Simplici0/breakeven/internal/logging"
	"github.com/Simplici0/breakeven/internal/scenario"
)

const version = "0.1.0"

// options holds the persistent flags shared by every subcommand.
type options struct {
	scenarioFile string
	name         string
	price        float64
	variableCost float64
	fixedCost    float64
	maxUnits     float64
	plan         float64
	rounding     string
	verbose      bool
}

// Execute runs the CLI
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "breakeven",
		Short: "Break-even and margin of safety calculator",
		Long: `breakeven explains break-even analysis for a linear cost model.

Inputs come from a scenario file, from flags, or from the classroom example
(price £10, variable cost £4, fixed costs £1,200).

Examples:
  breakeven bep
  breakeven mos --plan 150
  breakeven chart --regions --mos --out chart.svg
  breakeven export --scenario presets.hcl --name lemonade`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := logging.DefaultConfig()
			cfg.Level = "warn"
			if opts.verbose {
				cfg.Level = "debug"
			}
			return logging.Initialize(cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.scenarioFile, "scenario", "", "HCL file with scenario presets")
	flags.StringVar(&opts.name, "name", scenario.DefaultName, "scenario to use from the presets")
	flags.Float64Var(&opts.price, "price", 0, "selling price per unit (£)")
	flags.Float64Var(&opts.variableCost, "variable-cost", 0, "variable cost per unit (£)")
	flags.Float64Var(&opts.fixedCost, "fixed-cost", 0, "fixed costs (£)")
	flags.Float64Var(&opts.maxUnits, "max-units", 0, "largest quantity on the chart (at least 10)")
	flags.Float64Var(&opts.plan, "plan", 0, "planned sales in units")
	flags.StringVar(&opts.rounding, "rounding", "", "unit rounding: int or dp2")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newBEPCmd(opts),
		newMOSCmd(opts),
		newChartCmd(opts),
		newExportCmd(opts),
		newSelfTestCmd(),
		newScenariosCmd(opts),
		newVersionCmd(),
	)
	return root
}

// resolve picks the base scenario and applies any model flags that were set.
func (o *options) resolve(cmd *cobra.Command) (scenario.Scenario, error) {
	presets, err := o.presets()
	if err != nil {
		return scenario.Scenario{}, err
	}

	var base scenario.Scenario
	found := false
	for _, s := range presets {
		if s.Name == o.name {
			base, found = s, true
			break
		}
	}
	if !found {
		return scenario.Scenario{}, apperr.NotFound("scenario", o.name)
	}

	flags := cmd.Flags()
	m := base.Model
	if flags.Changed("price") {
		m.Price = o.price
	}
	if flags.Changed("variable-cost") {
		m.VariableCost = o.variableCost
	}
	if flags.Changed("fixed-cost") {
		m.FixedCost = o.fixedCost
	}
	if flags.Changed("max-units") {
		m.MaxUnits = o.maxUnits
	}
	if flags.Changed("rounding") {
		if m.Rounding, err = breakeven.ParseRoundingMode(o.rounding); err != nil {
			return scenario.Scenario{}, err
		}
	}
	if flags.Changed("plan") {
		base.PlannedUnits = o.plan
	}
	base.Model = breakeven.NewCostModel(m.Price, m.VariableCost, m.FixedCost, m.MaxUnits, m.Rounding)

	logging.Debug("resolved scenario",
		zap.String("name", base.Name),
		zap.Float64("price", base.Model.Price),
		zap.Float64("variable_cost", base.Model.VariableCost),
		zap.Float64("fixed_cost", base.Model.FixedCost),
		zap.Float64("max_units", base.Model.MaxUnits),
		zap.Float64("planned_units", base.PlannedUnits),
	)
	return base, nil
}

// presets returns the scenarios from --scenario, always including the classroom
// example unless the file overrides it.
func (o *options) presets() ([]scenario.Scenario, error) {
	list := []scenario.Scenario{scenario.Default()}
	if o.scenarioFile == "" {
		return list, nil
	}

	loaded, err := scenario.LoadFile(o.scenarioFile)
	if err != nil {
		return nil, err
	}
	for _, s := range loaded {
		if s.Name == scenario.DefaultName {
			list[0] = s
			continue
		}
		list = append(list, s)
	}
	return list, nil
}

// warnInvalid prints the validation message the page shows next to the chart.
func warnInvalid(w io.Writer, m breakeven.CostModel) {
	if err := m.Validate(); err != nil {
		fmt.Fprintf(w, "Check inputs: %s\n", breakeven.Reason(err))
	}
}

// output opens path for writing, or returns stdout when path is empty or "-".
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "breakeven version %s\n", version)
		},
	}
}
