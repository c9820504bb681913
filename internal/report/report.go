package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stockpick/internal/domain"
)

// Sheet names used by the xlsx export.
const (
	SheetProducts     = "Products"
	SheetCombinations = "Combinations"
	SheetSelected     = "Selected"
	SheetRemoved      = "Removed"
)

// Column headers.
const (
	ColIndex           = "Index"
	ColProduct         = "Product"
	ColProducts        = "Products"
	ColStock           = "Stock"
	ColImporter        = "Importer"
	ColUnitPrice       = "Unit Price"
	ColStockForAllUnit = "Stock for All Units"
	ColLimit           = "Limit"
	ColTotalPrice      = "Total Price"
	ColDifference      = "Difference"
)

// Catalog record keys, shared with the catalog loaders.
const (
	KeyID              = "id"
	KeyProduct         = "product"
	KeyStock           = "stock"
	KeyImporter        = "importer"
	KeyUnitPrice       = "unit_price"
	KeyStockForAllUnit = "stockForAllUnit"
)

// Products is the product table as shown on screen.
func Products(items []domain.Item) domain.Table {
	t := domain.Table{
		Name:    SheetProducts,
		Columns: []string{ColIndex, ColProduct, ColStock, ColImporter, ColUnitPrice, ColStockForAllUnit},
		Rows:    make([]map[string]any, 0, len(items)),
	}
	for i, it := range items {
		t.Rows = append(t.Rows, map[string]any{
			ColIndex:           i + 1,
			ColProduct:         it.Name,
			ColStock:           it.Stock,
			ColImporter:        it.Importer,
			ColUnitPrice:       it.UnitPrice,
			ColStockForAllUnit: it.StockForAllUnit,
		})
	}
	return t
}

// ProductRecords is the product list keyed by catalog field names, so an
// exported workbook can be loaded back as a catalog.
func ProductRecords(items []domain.Item) domain.Table {
	t := domain.Table{
		Name:    SheetProducts,
		Columns: []string{KeyID, KeyProduct, KeyStock, KeyImporter, KeyUnitPrice, KeyStockForAllUnit},
		Rows:    make([]map[string]any, 0, len(items)),
	}
	for _, it := range items {
		t.Rows = append(t.Rows, map[string]any{
			KeyID:              int64(it.ID),
			KeyProduct:         it.Name,
			KeyStock:           it.Stock,
			KeyImporter:        it.Importer,
			KeyUnitPrice:       it.UnitPrice,
			KeyStockForAllUnit: it.StockForAllUnit,
		})
	}
	return t
}

// Combinations lists combos against ceiling, one row each.
func Combinations(combos []domain.Combination, ceiling decimal.Decimal) domain.Table {
	t := combinationTable(SheetCombinations, widest(combos))
	for i, c := range combos {
		t.Rows = append(t.Rows, combinationRow(i+1, c, ceiling))
	}
	return t
}

// Selections lists committed selections with the ceiling in force at commit.
func Selections(records []domain.SelectionRecord) domain.Table {
	combos := make([]domain.Combination, len(records))
	for i, r := range records {
		combos[i] = r.Combination
	}
	t := combinationTable(SheetSelected, widest(combos))
	for i, r := range records {
		t.Rows = append(t.Rows, combinationRow(i+1, r.Combination, r.Ceiling))
	}
	return t
}

// Removals lists each removed item as a single-item group against ceiling.
func Removals(records []domain.RemovalRecord, ceiling decimal.Decimal) domain.Table {
	width := 0
	if len(records) > 0 {
		width = 1
	}
	t := combinationTable(SheetRemoved, width)
	for i, r := range records {
		t.Rows = append(t.Rows, combinationRow(i+1, domain.NewCombination([]domain.Item{r.Item}), ceiling))
	}
	return t
}

// UnitPriceColumn names the k-th (1-based) unit price column.
func UnitPriceColumn(k int) string { return fmt.Sprintf("%s %d", ColUnitPrice, k) }

func combinationTable(name string, width int) domain.Table {
	cols := []string{ColIndex, ColProducts}
	for k := 1; k <= width; k++ {
		cols = append(cols, UnitPriceColumn(k))
	}
	cols = append(cols, ColLimit, ColTotalPrice, ColDifference)
	return domain.Table{Name: name, Columns: cols, Rows: []map[string]any{}}
}

func combinationRow(index int, c domain.Combination, ceiling decimal.Decimal) map[string]any {
	row := map[string]any{
		ColIndex:      index,
		ColProducts:   c.Names(),
		ColLimit:      ceiling,
		ColTotalPrice: c.Total.StringFixed(2),
		ColDifference: c.Difference(ceiling).StringFixed(2),
	}
	for k, it := range c.Items {
		row[UnitPriceColumn(k+1)] = it.UnitPrice
	}
	return row
}

func widest(combos []domain.Combination) int {
	w := 0
	for _, c := range combos {
		if c.Len() > w {
			w = c.Len()
		}
	}
	return w
}
