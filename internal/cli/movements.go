package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/stockroom/internal/app"
	"github.com/mamadbah2/stockroom/internal/query"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
)

const dateLayout = "2006-01-02"

// NewMovementsCommand creates the movements command.
func NewMovementsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movements",
		Short: "Inspect stock movements",
	}
	cmd.AddCommand(newMovementsListCommand(rootOpts))
	return cmd
}

func newMovementsListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		list      ListOptions
		product   string
		kind      string
		dateRange string
		warehouse string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stock movements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := list.spec(query.Filters{
				"product":   product,
				"type":      kind,
				"range":     dateRange,
				"warehouse": warehouse,
			})
			return withApp(cmd, rootOpts, func(a *app.App) error {
				movements, err := a.Inventory.Movements.Query(spec, inventory.MovementSchema, a.Inventory.Now())
				if err != nil {
					return err
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), movements)
				}

				rows := make([][]string, len(movements))
				for i, m := range movements {
					rows[i] = []string{
						m.ID, m.Date.Format(dateLayout), m.MovementType, m.ProductName,
						strconv.Itoa(m.Quantity), m.FromWarehouse, m.ToWarehouse, m.InitiatedBy,
					}
				}
				return writeTable(cmd.OutOrStdout(),
					[]string{"ID", "DATE", "TYPE", "PRODUCT", "QTY", "FROM", "TO", "BY"}, rows)
			})
		},
	}

	addListFlags(cmd, &list)
	cmd.Flags().StringVar(&product, "product", "", "item id")
	cmd.Flags().StringVar(&kind, "type", "", "movement type")
	cmd.Flags().StringVar(&dateRange, "range", "", "date range (today|yesterday|thisWeek|thisMonth|lastMonth|last3Months)")
	cmd.Flags().StringVar(&warehouse, "warehouse", "", "source or destination warehouse")
	return cmd
}
