package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stockpick/internal/domain"
	"stockpick/internal/report"
)

// catalog [--sort col] [--desc] [--export file]: print the product table.
func catalogCmd() *cobra.Command {
	var (
		sortBy     string
		descending bool
		exportTo   string
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the product table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sortBy != "" {
				if err := appCtx.Inventory.Sort(parseColumn(sortBy), descending); err != nil {
					return err
				}
			}
			renderTable(cmd.OutOrStdout(), report.Products(appCtx.Inventory.Items()))
			if cmd.Flags().Changed("export") {
				path, err := appCtx.ExportProducts(cmd.Context(), exportTo)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort by id, product, stock, importer, unit_price or stock_for_all_unit")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort descending")
	cmd.Flags().StringVar(&exportTo, "export", "", "also write the table to this xlsx file (products.xlsx when empty)")
	return cmd
}

// parseColumn accepts the column keys plus a few spoken aliases.
func parseColumn(s string) domain.Column {
	switch c := strings.ToLower(strings.TrimSpace(s)); c {
	case "name":
		return domain.ColumnName
	case "price", "unit-price":
		return domain.ColumnUnitPrice
	case "stockforallunit", "total":
		return domain.ColumnStockForAllUnit
	default:
		return domain.Column(c)
	}
}
