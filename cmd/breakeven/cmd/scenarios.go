package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Simplici0/breakeven/internal/format"
)

func newScenariosCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the available scenario presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := opts.presets()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPRICE\tVARIABLE\tMARGIN\tFIXED\tBEP\tDESCRIPTION")
			for _, s := range presets {
				bep := format.Placeholder
				if b := s.Model.BreakEven(); b.Defined {
					bep = format.Units(b.Units, s.Model.Rounding) + " units"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					s.Name,
					format.Money2(s.Model.Price),
					format.Money2(s.Model.VariableCost),
					format.Money2(s.Model.ContributionMargin()),
					format.Money(s.Model.FixedCost),
					bep,
					s.Description,
				)
			}
			return tw.Flush()
		},
	}
}
