package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/breakeven/internal/chart"
	"github.com/Simplici0/breakeven/internal/render"
	"github.com/Simplici0/breakeven/internal/report"
)

func newChartCmd(opts *options) *cobra.Command {
	var (
		outPath string
		width   float64
		regions bool
		mos     bool
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the break-even chart as SVG",
		Long: `Render the cost/revenue chart as a standalone SVG document.

Profit and loss regions and the margin of safety need valid inputs and a
break-even point inside the chart; otherwise only axes and lines are drawn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			chartOpts := chart.Options{ShowRegions: regions, ShowMOS: mos, PlannedUnits: s.PlannedUnits}
			scale := chart.BuildScaleMapper(s.Model, chart.DefaultViewBounds(width))
			g := chart.BuildChartGeometry(s.Model, scale, chartOpts.Guard(s.Model))

			w, closeFn, err := output(cmd, outPath)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeFn(); err == nil {
					err = cerr
				}
			}()
			if err := render.SVG(w, g); err != nil {
				return fmt.Errorf("render chart: %w", err)
			}

			stderr := cmd.ErrOrStderr()
			warnInvalid(stderr, s.Model)
			fmt.Fprintln(stderr, g.BEPStatus)
			fmt.Fprintln(stderr, g.MOSStatus)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&width, "width", 800, "chart width in pixels")
	cmd.Flags().BoolVar(&regions, "regions", false, "shade profit and loss regions")
	cmd.Flags().BoolVar(&mos, "mos", false, "draw the margin of safety")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the model and results as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			w, closeFn, err := output(cmd, outPath)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeFn(); err == nil {
					err = cerr
				}
			}()
			return report.WriteCSV(w, report.Summary{Model: s.Model, PlannedUnits: s.PlannedUnits})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
