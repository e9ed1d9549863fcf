package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/stockroom/internal/app"
	"github.com/mamadbah2/stockroom/internal/query"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
)

// ListOptions are the view criteria shared by the list commands.
type ListOptions struct {
	Query string
	Sort  string
	Dir   string
}

func (o ListOptions) spec(filters query.Filters) query.Spec {
	return query.Spec{
		Query:   o.Query,
		Filters: filters,
		Sort:    query.Sort{Column: o.Sort, Direction: query.Direction(o.Dir)},
	}
}

func addListFlags(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVar(&o.Query, "q", "", "free text search")
	cmd.Flags().StringVar(&o.Sort, "sort", "", "sort column")
	cmd.Flags().StringVar(&o.Dir, "dir", "", "sort direction (asc|desc)")
}

// NewItemsCommand creates the items command.
func NewItemsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Inspect inventory items",
	}
	cmd.AddCommand(newItemsListCommand(rootOpts))
	return cmd
}

func newItemsListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		list     ListOptions
		category string
		supplier string
		stock    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := list.spec(query.Filters{"category": category, "supplier": supplier, "stock": stock})
			return withApp(cmd, rootOpts, func(a *app.App) error {
				items, err := a.Inventory.Items.Query(spec, inventory.ItemSchema, a.Inventory.Now())
				if err != nil {
					return err
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), items)
				}

				rows := make([][]string, len(items))
				for i, item := range items {
					rows[i] = []string{
						item.ID, item.SKU, item.Name, item.CategoryName,
						strconv.Itoa(item.Quantity), strconv.Itoa(item.ReorderLevel),
						a.Reporting.Money(item.SellingPrice), item.StockLevel(),
					}
				}
				return writeTable(cmd.OutOrStdout(),
					[]string{"ID", "SKU", "NAME", "CATEGORY", "QTY", "REORDER", "PRICE", "STOCK"}, rows)
			})
		},
	}

	addListFlags(cmd, &list)
	cmd.Flags().StringVar(&category, "category", "", "category id")
	cmd.Flags().StringVar(&supplier, "supplier", "", "supplier id")
	cmd.Flags().StringVar(&stock, "stock", "", "stock level (in-stock|low-stock|out-of-stock)")
	return cmd
}
