package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/stockroom/internal/app"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Produce inventory reports",
	}
	cmd.AddCommand(newReportSummaryCommand(rootOpts))
	cmd.AddCommand(newReportMovementsCommand(rootOpts))
	cmd.AddCommand(newReportExportCommand(rootOpts))
	return cmd
}

func newReportSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(a *app.App) error {
				now := time.Now()
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), a.Reporting.Snapshot(now))
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), a.Reporting.Summary(now))
				return err
			})
		},
	}
}

func newReportMovementsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "movements",
		Short: "Print movement totals and the monthly stock in/out series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(a *app.App) error {
				stats := a.Reporting.MovementStats()
				monthly := a.Reporting.MonthlyMovements()
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"totals": stats, "monthly": monthly})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "New stock: %.0f\nStock out: %.0f\nAdjustments: %.0f\nTransfers: %d\n\n",
					stats.TotalNewStock, stats.TotalStockOut, stats.TotalAdjustments, stats.TotalTransfers)

				rows := make([][]string, len(monthly.Buckets))
				for i, b := range monthly.Buckets {
					rows[i] = []string{
						b.Label,
						strconv.FormatFloat(b.Values[reporting.SeriesStockIn], 'f', -1, 64),
						strconv.FormatFloat(b.Values[reporting.SeriesStockOut], 'f', -1, 64),
					}
				}
				return writeTable(out, []string{"MONTH", "STOCK IN", "STOCK OUT"}, rows)
			})
		},
	}
}

func newReportExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export a report snapshot to the configured sinks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(a *app.App) error {
				snap, err := a.Reporting.Export(cmd.Context(), time.Now())
				if err != nil {
					return fmt.Errorf("export report: %w", err)
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), snap)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "snapshot exported at %s\n", snap.GeneratedAt.Format(time.RFC3339))
				return err
			})
		},
	}
}
