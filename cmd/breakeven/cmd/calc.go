package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/breakeven/internal/report"
	"github.com/Simplici0/breakeven/internal/selftest"
)

func newBEPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bep",
		Short: "Explain the break-even point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			warnInvalid(cmd.ErrOrStderr(), s.Model)
			fmt.Fprintln(cmd.OutOrStdout(), report.ExplainBEP(s.Model))
			return nil
		},
	}
}

func newMOSCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mos",
		Short: "Explain the margin of safety for planned sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			warnInvalid(cmd.ErrOrStderr(), s.Model)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.ExplainMOS(s.Model, s.PlannedUnits))
			fmt.Fprintln(out, report.MOSTag(s.Model, s.PlannedUnits))
			return nil
		},
	}
}

func newSelfTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the built-in calculation checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := selftest.Run()
			fmt.Fprintln(cmd.OutOrStdout(), selftest.Report(checks))
			if !selftest.Passed(checks) {
				return fmt.Errorf("self-test failed")
			}
			return nil
		},
	}
}
