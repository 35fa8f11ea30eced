package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/analytics"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/dashboard"
)

func newStatsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print summary statistics for the filtered dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := g.service(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), svc.ComputeStats(g.filter))
		},
	}
}

func newChartCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "chart [name]",
		Short: "Print chart data; unknown names produce {}",
		Long: `Print chart data for the filtered dataset.

Example: churnctl chart contractChurn --service "Fiber optic"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.service(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), svc.ComputeChart(args[0], g.filter))
		},
	}
}

func newChartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "charts",
		Short: "List chart names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range analytics.ChartNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newFiltersCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "Print allowed filter values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := g.service(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), svc.ListFilters())
		},
	}
}

func newDashboardCmd(g *globals) *cobra.Command {
	var (
		out    string
		silent bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Export the churn dashboard to an Excel workbook",
		Long: `Export the churn dashboard to an Excel workbook with data tables and charts
on the Overview, Demographics, Services and Financials sheets.

Example: churnctl dashboard --out churn.xlsx --contract "Month-to-month"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := g.service(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			var progress dashboard.Progress
			if !silent {
				progress = progressbar.NewOptions(dashboard.PanelCount(),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("charts"),
					progressbar.OptionShowCount(),
				)
			}

			if err := dashboard.Export(cmd.Context(), svc, g.filter, out, progress); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\ndashboard written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "churn_dashboard.xlsx", "Output workbook path")
	cmd.Flags().BoolVar(&silent, "silent", false, "Disable the progress bar")
	return cmd
}
